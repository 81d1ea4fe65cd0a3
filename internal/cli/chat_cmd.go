package cli

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"
)

func newChatCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive session; type 'exit' to quit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := opts.client()
			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())

			promptColor.Fprintln(out, "Chatting with ROBI. Type 'exit' to quit.")
			for {
				promptColor.Fprint(out, "You: ")
				if !scanner.Scan() {
					break
				}
				query := strings.TrimSpace(scanner.Text())
				switch strings.ToLower(query) {
				case "":
					continue
				case "exit", "quit":
					return nil
				}
				askOnce(cmd.Context(), client, out, query)
			}
			return scanner.Err()
		},
	}
}
