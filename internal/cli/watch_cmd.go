package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"robi-be/internal/pkg/logger"
	"robi-be/pkg/events"
	pktNats "robi-be/pkg/nats"

	"github.com/spf13/cobra"
)

func newWatchCmd(opts *Options) *cobra.Command {
	var durable string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream server events from NATS until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sub, err := pktNats.NewSubscriber(opts.NatsURL, logger.NewNopLogger())
			if err != nil {
				return err
			}
			defer sub.Close()

			out := cmd.OutOrStdout()
			err = sub.Subscribe(ctx, pktNats.SubjectPrefix+">", durable, func(_ context.Context, e events.Event) error {
				promptColor.Fprintf(out, "%s ", e.Timestamp().Format("15:04:05"))
				fmt.Fprintf(out, "%s %v\n", e.EventType(), e.Payload())
				return nil
			})
			if err != nil {
				return err
			}

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.NatsURL, "nats", "nats://localhost:4222", "NATS server URL")
	cmd.Flags().StringVar(&durable, "durable", "", "durable consumer name (empty for an ephemeral consumer)")
	return cmd
}
