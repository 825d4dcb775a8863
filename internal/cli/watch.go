package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pasteworks/clipstream/pkg/clipstream"
	"github.com/pasteworks/clipstream/pkg/format"
	"github.com/pasteworks/clipstream/pkg/types"
)

var (
	pollInterval  time.Duration
	maxBytes      int64
	maxImageBytes int64
	customFormats []string
	streamBuffer  int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the clipboard and print each change event",
	Long: `Watch starts the clipboard monitor and prints every detected change
until interrupted. Classification errors are printed to stderr; monitoring
continues after them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch()
	},
}

func init() {
	watchCmd.Flags().DurationVar(&pollInterval, "poll-interval", 0,
		"pause between clipboard change checks (default from config)")
	watchCmd.Flags().Int64Var(&maxBytes, "max-bytes", 0,
		"skip payloads larger than this many bytes (0 = config value)")
	watchCmd.Flags().Int64Var(&maxImageBytes, "max-image-bytes", 0,
		"independent size cap for images (0 = config value)")
	watchCmd.Flags().StringSliceVar(&customFormats, "custom-format", nil,
		"custom clipboard format name to match ahead of built-in kinds (repeatable)")
	watchCmd.Flags().IntVar(&streamBuffer, "buffer", 0,
		"event buffer capacity for this subscriber (0 = config value)")
}

func runWatch() error {
	opts := clipstream.Options{
		CustomFormats: cfg.Monitor.CustomFormats,
		PollInterval:  cfg.Monitor.PollInterval(),
		MaxBytes:      cfg.Monitor.MaxBytes,
		MaxImageBytes: cfg.Monitor.MaxImageBytes,
		Logger:        logger,
	}
	if pollInterval > 0 {
		opts.PollInterval = pollInterval
	}
	if maxBytes > 0 {
		opts.MaxBytes = maxBytes
	}
	if maxImageBytes > 0 {
		opts.MaxImageBytes = maxImageBytes
	}
	if len(customFormats) > 0 {
		opts.CustomFormats = customFormats
	}

	buffer := cfg.Monitor.StreamBuffer
	if streamBuffer > 0 {
		buffer = streamBuffer
	}

	driver, err := clipstream.Start(opts)
	if err != nil {
		return err
	}
	defer driver.Stop()

	stream := driver.NewStream(buffer)
	defer stream.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	logger.Info("watching clipboard",
		zap.String("device_id", cfg.DeviceID),
		zap.Duration("poll_interval", opts.PollInterval))

	for {
		select {
		case <-sigCh:
			logger.Info("interrupted, shutting down")
			return nil
		case result, ok := <-stream.Results():
			if !ok {
				// The driver stopped on its own; a fatal monitor error
				// was already printed as the final event.
				return nil
			}
			printResult(result)
		}
	}
}

func printResult(result types.Result) {
	if result.Err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", result.Err)
		return
	}
	fmt.Println(format.Body(result.Body))
}
