package cmd

import (
	"github.com/spf13/cobra"

	"github.com/connorhough/llmqa/internal/llm"
	"github.com/connorhough/llmqa/internal/repl"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Ask questions line by line until you type quit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := resolveSettings("repl")
			if err != nil {
				return err
			}

			streams := llm.NewIOStreams()
			streams.In = cmd.InOrStdin()
			streams.Out = cmd.OutOrStdout()
			streams.ErrOut = cmd.ErrOrStderr()

			log := newLogger(settings, streams.ErrOut, false)
			sess, err := newSession(settings, log)
			if err != nil {
				return err
			}

			return repl.New(streams, sess, log).Run(cmd.Context())
		},
	}
}
