package format

import (
	"testing"
)

func TestHumanBytes(t *testing.T) {
	type testCase struct {
		input    int64
		expected string
	}

	testCases := []testCase{
		{0, "0 B"},
		{1, "1 B"},
		{999, "999 B"},
		{1000, "1000 B"},
		{1001, "1.0 KB"},
		{1500, "1.5 KB"},
		{1000000, "1000.0 KB"},
		{1000001, "1.0 MB"},
		{2500000, "2.5 MB"},
		{1000000001, "1.0 GB"},
		{1000000000001, "1.0 TB"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			result := HumanBytes(tc.input)
			if result != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, result)
			}
		})
	}
}
