package cmd

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/connorhough/llmqa/internal/llm"
	"github.com/connorhough/llmqa/internal/tui"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Full-screen terminal page with recent-question history",
		Long: `Full-screen terminal page: type a question, read the answer rendered as
markdown, and browse the last five turns in the side panel.

Keys: enter ask, tab switch focus, ctrl+t toggle mock mode, ctrl+l clear
history, esc quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			streams := llm.NewIOStreams()
			if !streams.IsFullScreenCapable() {
				return errors.New("tui requires an interactive terminal; use 'llmqa repl' instead")
			}

			settings, err := resolveSettings("tui")
			if err != nil {
				return err
			}

			// Logs would corrupt the full-screen page; keep them only when debugging.
			var w io.Writer = io.Discard
			if debugFlag {
				w = streams.ErrOut
			}
			sess, err := newSession(settings, newLogger(settings, w, false))
			if err != nil {
				return err
			}

			return tui.Run(cmd.Context(), sess, streams.In, streams.Out)
		},
	}
}
