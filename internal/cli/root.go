package cli

import (
	"time"

	"github.com/spf13/cobra"
)

const DefaultServer = "http://127.0.0.1:5000"

// Options are the persistent flags shared by every subcommand.
type Options struct {
	Server  string
	Token   string
	Timeout time.Duration
	NatsURL string
}

func (o *Options) client() *Client {
	return NewClient(o.Server, o.Token, o.Timeout)
}

// NewRootCmd creates the top-level "robi" command.
func NewRootCmd() *cobra.Command {
	opts := &Options{}

	root := &cobra.Command{
		Use:           "robi",
		Short:         "Talk to the ROBI assistant server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.Server, "server", DefaultServer, "ROBI server base URL")
	root.PersistentFlags().StringVar(&opts.Token, "token", "", "bearer token for admin routes")
	root.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 2*time.Minute, "HTTP request timeout")

	root.AddCommand(
		newAskCmd(opts),
		newReloadCmd(opts),
		newHealthCmd(opts),
		newChatCmd(opts),
		newWatchCmd(opts),
	)

	return root
}
