package meter

import "iter"

// All wraps seq so that each yielded element advances a meter by one, with
// a final render when the loop finishes or the caller breaks early. The
// wrapped sequence is as single-pass as seq itself.
//
// Render failures cannot surface mid-loop; the meter latches the first one
// (see Meter.Err). Callers that need to observe write errors as they happen
// should construct a Meter directly and drive Update themselves.
func All[T any](seq iter.Seq[T], opts Options) (iter.Seq[T], error) {
	m, err := New(opts)
	if err != nil {
		return nil, err
	}
	return func(yield func(T) bool) {
		defer m.Close()
		for v := range seq {
			if !yield(v) {
				return
			}
			_ = m.Update(1)
		}
	}, nil
}

// Slice wraps s like All, deriving Total from len(s) when opts leaves it
// unset.
func Slice[T any](s []T, opts Options) (iter.Seq[T], error) {
	if opts.Total == 0 {
		opts.Total = int64(len(s))
	}
	return All(func(yield func(T) bool) {
		for _, v := range s {
			if !yield(v) {
				return
			}
		}
	}, opts)
}

// Count yields 0 through n-1 with a metered display, the counted-range
// convenience. Total defaults to n.
func Count(n int64, opts Options) (iter.Seq[int64], error) {
	if opts.Total == 0 && n > 0 {
		opts.Total = n
	}
	m, err := New(opts)
	if err != nil {
		return nil, err
	}
	return func(yield func(int64) bool) {
		defer m.Close()
		for i := int64(0); i < n; i++ {
			if !yield(i) {
				return
			}
			_ = m.Update(1)
		}
	}, nil
}
