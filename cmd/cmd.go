package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pace-tools/pace/envconfig"
	"github.com/pace-tools/pace/logutil"
	"github.com/pace-tools/pace/meter"
	"github.com/pace-tools/pace/progress"
	"github.com/pace-tools/pace/version"
)

func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pace",
		Short:         "Meter data flowing through a pipe",
		Long:          "pace copies standard input to standard output while rendering line or byte progress to standard error.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if envconfig.Debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(logutil.NewLogger(os.Stderr, level))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipe(cmd, os.Stdin, os.Stdout, os.Stderr)
		},
	}

	rootCmd.Flags().BoolP("bytes", "b", false, "Count bytes instead of lines")
	rootCmd.Flags().Int64P("total", "s", 0, "Expected total count, enables percentage and ETA")
	rootCmd.Flags().StringP("description", "d", "", "Description shown before the display")
	rootCmd.Flags().Duration("interval", 0, "Minimum time between display updates")
	rootCmd.Flags().Bool("no-leave", false, "Clear the display on completion")
	rootCmd.Flags().BoolP("quiet", "q", false, "Suppress the progress display")

	return rootCmd
}

func runPipe(cmd *cobra.Command, in io.Reader, out, display io.Writer) error {
	countBytes, _ := cmd.Flags().GetBool("bytes")
	total, _ := cmd.Flags().GetInt64("total")
	desc, _ := cmd.Flags().GetString("description")
	interval, _ := cmd.Flags().GetDuration("interval")
	noLeave, _ := cmd.Flags().GetBool("no-leave")
	quiet, _ := cmd.Flags().GetBool("quiet")

	opts := meter.Options{
		Description: desc,
		Total:       total,
		Leave:       meter.Bool(!noLeave),
		Sink:        display,
	}
	if cmd.Flags().Changed("interval") {
		opts.MinInterval = meter.Duration(interval)
	}
	if quiet || envconfig.NoProgress {
		opts.Sink = io.Discard
	}
	switch {
	case total > 0 && countBytes:
		opts.Renderer = progress.NewBytesBar()
	case total > 0:
		opts.Renderer = progress.NewBar()
	case countBytes:
		opts.Renderer = progress.NewBytesSpinner()
	default:
		opts.Renderer = progress.NewSpinner()
	}

	m, err := meter.New(opts)
	if err != nil {
		return err
	}

	slog.Debug("metering stdin", "bytes", countBytes, "total", total)

	if countBytes {
		err = copyBytes(m, out, in)
	} else {
		err = copyLines(m, out, in)
	}
	return errors.Join(err, m.Close())
}

func copyBytes(m *meter.Meter, dst io.Writer, src io.Reader) error {
	buf := make([]byte, 64*1024)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return fmt.Errorf("write: %w", werr)
			}
			if merr := m.Update(int64(n)); merr != nil {
				return merr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
	}
}

func copyLines(m *meter.Meter, dst io.Writer, src io.Reader) error {
	w := bufio.NewWriter(dst)

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		w.Write(scanner.Bytes())
		w.WriteByte('\n')
		if err := m.Update(1); err != nil {
			w.Flush()
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		w.Flush()
		return fmt.Errorf("read: %w", err)
	}
	return w.Flush()
}
