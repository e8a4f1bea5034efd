package cli

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"pomodoro/internal/notify"
	"pomodoro/internal/tui"
)

// AddTUICommand adds the tui command to the root command.
func AddTUICommand(root *cobra.Command) {
	root.AddCommand(&cobra.Command{
		Use:         "tui",
		Short:       "Run the timer in the terminal",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{fileOnlyLogKey: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, _, err := resolveSettings(cmd)
			if err != nil {
				return err
			}

			logger := GetLogger()
			s, err := newSession(settings, notify.NewLogNotifier(logger), logger)
			if err != nil {
				return err
			}
			defer s.close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			g, gctx := errgroup.WithContext(ctx)
			s.runBackground(gctx, g)
			g.Go(func() error {
				defer cancel()
				return tui.Run(gctx, s.engine)
			})
			return g.Wait()
		},
	})
}
