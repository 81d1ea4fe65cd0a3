package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"robi-be/internal/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	answerColor = color.New(color.FgGreen)
	metaColor   = color.New(color.Faint)
	errorColor  = color.New(color.FgRed)
	promptColor = color.New(color.FgCyan, color.Bold)
)

func newAskCmd(opts *Options) *cobra.Command {
	var showTimings bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask ROBI a single question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.client().Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			printAnswer(cmd.OutOrStdout(), res, showTimings)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showTimings, "timings", true, "print category and timings after the answer")
	return cmd
}

func printAnswer(w io.Writer, res *dto.AskResponse, showTimings bool) {
	answerColor.Fprintln(w, strings.TrimSpace(res.Answer))
	if !showTimings {
		return
	}

	t := res.Timings
	parts := []string{}
	if t.Category != "" {
		parts = append(parts, "category="+t.Category)
	}
	if t.Cached {
		parts = append(parts, "cached")
	}
	if t.NameUpdate {
		parts = append(parts, "name updated")
	}
	if t.ResponseTime > 0 {
		parts = append(parts, fmt.Sprintf("response=%.2fs", t.ResponseTime))
	}
	parts = append(parts, fmt.Sprintf("total=%.2fs", t.TotalTime))
	metaColor.Fprintln(w, "["+strings.Join(parts, ", ")+"]")
}

func newReloadCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Re-ingest the server's resource directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := opts.client().Reload(cmd.Context())
			if err != nil {
				return err
			}
			answerColor.Fprintln(cmd.OutOrStdout(), detail)
			return nil
		},
	}
}

func newHealthCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show server readiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := opts.client().Health(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			status := answerColor
			if !h.ResourcesLoaded {
				status = errorColor
			}
			status.Fprintf(w, "status: %s, resources loaded: %t\n", h.Status, h.ResourcesLoaded)
			fmt.Fprintf(w, "documents: %d (generation %d)\n", h.Documents, h.Generation)
			fmt.Fprintf(w, "user: %s\n", h.UserName)
			fmt.Fprintf(w, "agents: %s\n", strings.Join(h.Agents, ", "))
			return nil
		},
	}
}

// askOnce is shared by the chat loop; errors are printed, not returned.
func askOnce(ctx context.Context, c *Client, w io.Writer, query string) {
	res, err := c.Ask(ctx, query)
	if err != nil {
		errorColor.Fprintln(w, "Error:", err)
		return
	}
	printAnswer(w, res, true)
}
