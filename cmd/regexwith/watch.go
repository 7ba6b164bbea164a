package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"regex-with/internal/analyze"
	"regex-with/internal/watch"
)

// patternTTL bounds how long a pattern that no longer appears stays cached.
const patternTTL = 10 * time.Minute

func newWatchCmd(root *rootOptions) *cobra.Command {
	opts := &genOptions{}

	var (
		debounce    time.Duration
		minInterval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [packages]",
		Short: "Regenerate whenever Go sources change",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			opts.apply(cfg, args)

			if err := cfg.Validate(); err != nil {
				return err
			}

			if cmd.Flags().Changed("debounce") {
				cfg.Watch.DebounceMs = int(debounce.Milliseconds())
			}

			if cmd.Flags().Changed("min-interval") {
				cfg.Watch.MinIntervalMs = int(minInterval.Milliseconds())
			}

			stderr := cmd.ErrOrStderr()
			patterns := analyze.NewPatternCache(patternTTL)

			return watch.Run(cmd.Context(), watch.Options{
				Dirs:        watchDirs(root.dir, cfg.Packages),
				Output:      cfg.Output,
				Debounce:    time.Duration(cfg.Watch.DebounceMs) * time.Millisecond,
				MinInterval: time.Duration(cfg.Watch.MinIntervalMs) * time.Millisecond,
				Regenerate: func(ctx context.Context) error {
					return generate(ctx, stderr, root.dir, cfg, patterns)
				},
			})
		},
	}

	opts.bind(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", 300*time.Millisecond, "quiet period after the last change")
	cmd.Flags().DurationVar(&minInterval, "min-interval", time.Second, "minimum time between regenerations")

	return cmd
}
