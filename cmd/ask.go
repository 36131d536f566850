package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask \"your question\"",
		Short: "Ask one question and print the answer",
		Long: `Ask one question and print the answer using your configured LLM provider.

The question is normalized and wrapped in the configured prompt template.
Failures (missing key, timeout, rate limit) are printed in place of the answer.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAsk,
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings("ask")
	if err != nil {
		return err
	}
	log := newLogger(settings, cmd.ErrOrStderr(), false)

	sess, err := newSession(settings, log)
	if err != nil {
		return err
	}

	turn, err := sess.Ask(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), turn.Answer)
	return nil
}
