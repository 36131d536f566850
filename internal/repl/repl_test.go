package repl

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connorhough/llmqa/internal/answer"
	"github.com/connorhough/llmqa/internal/llm"
	"github.com/connorhough/llmqa/internal/session"
)

type fakeAnswerer struct {
	result answer.Result
	calls  int
}

func (f *fakeAnswerer) GetAnswer(_ context.Context, _ []llm.Message, _ string) answer.Result {
	f.calls++
	return f.result
}

var (
	equalsRule = strings.Repeat("=", 60)
	dashRule   = strings.Repeat("-", 60)
)

func TestRun_MockTranscript(t *testing.T) {
	streams, in, out := llm.TestIOStreamsNonInteractive()
	in.WriteString("What is the capital of France?\nquit\n")

	sess := session.New(nil, session.WithMock(true))
	require.NoError(t, New(streams, sess, nil).Run(context.Background()))

	want := equalsRule + "\n" +
		"LLM Question & Answer System - CLI\n" +
		equalsRule + "\n" +
		"Type 'quit' to exit\n\n" +
		"[MOCK MODE: Using simulated responses]\n\n" +
		"Enter your question: " +
		"\nProcessing your question...\n\n" +
		"Processed Question: what is the capital of france\n" +
		"\nFetching answer from LLM...\n\n" +
		dashRule + "\n" +
		"ANSWER:\n" +
		"Mock Response: The capital varies by country. For example, the capital of France is Paris.\n" +
		dashRule + "\n\n" +
		"Enter your question: " +
		"\nThank you for using the LLM Q&A System!\n"

	assert.Equal(t, want, out.String())
	assert.Equal(t, 1, sess.History().Len())
}

func TestRun_QuitIsCaseInsensitive(t *testing.T) {
	for _, word := range []string{"quit", "QUIT", "  Quit  "} {
		t.Run(word, func(t *testing.T) {
			streams, in, out := llm.TestIOStreamsNonInteractive()
			in.WriteString(word + "\nnever asked\n")

			sess := session.New(nil, session.WithMock(true))
			require.NoError(t, New(streams, sess, nil).Run(context.Background()))

			assert.True(t, strings.HasSuffix(out.String(), "\nThank you for using the LLM Q&A System!\n"))
			assert.Equal(t, 0, sess.History().Len())
		})
	}
}

func TestRun_EmptyInputReprompts(t *testing.T) {
	streams, in, out := llm.TestIOStreamsNonInteractive()
	in.WriteString("   \nquit\n")

	fake := &fakeAnswerer{}
	sess := session.New(fake)
	require.NoError(t, New(streams, sess, nil).Run(context.Background()))

	assert.Contains(t, out.String(), "Enter your question: Please enter a valid question.\n\nEnter your question: ")
	assert.NotContains(t, out.String(), "Processing your question")
	assert.Equal(t, 0, fake.calls)
	assert.Equal(t, 0, sess.History().Len())
}

func TestRun_EOFBehavesLikeQuit(t *testing.T) {
	streams, in, out := llm.TestIOStreamsNonInteractive()
	in.WriteString("hello there")

	sess := session.New(nil, session.WithMock(true))
	require.NoError(t, New(streams, sess, nil).Run(context.Background()))

	assert.Contains(t, out.String(), "Processed Question: hello there\n")
	assert.True(t, strings.HasSuffix(out.String(), "Enter your question: \nThank you for using the LLM Q&A System!\n"))
}

func TestRun_NoMockBannerWhenRemote(t *testing.T) {
	streams, in, out := llm.TestIOStreamsNonInteractive()
	in.WriteString("quit\n")

	sess := session.New(&fakeAnswerer{})
	require.NoError(t, New(streams, sess, nil).Run(context.Background()))

	assert.NotContains(t, out.String(), "MOCK MODE")
}

func TestRun_FailurePrintedAsAnswer(t *testing.T) {
	streams, in, out := llm.TestIOStreamsNonInteractive()
	in.WriteString("Why is the sky blue?\nquit\n")

	fake := &fakeAnswerer{result: answer.Result{Err: llm.ErrRateLimitExceeded("openai", nil)}}
	sess := session.New(fake)
	require.NoError(t, New(streams, sess, nil).Run(context.Background()))

	assert.Contains(t, out.String(), "ANSWER:\nError: Rate limit exceeded. Please wait a moment and try again.\n"+dashRule)
	assert.Equal(t, 1, fake.calls)
}

func TestRun_Interrupted(t *testing.T) {
	streams, _, out := llm.TestIOStreamsNonInteractive()
	pr, pw := io.Pipe()
	defer pw.Close()
	streams.In = pr

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(streams, session.New(nil, session.WithMock(true)), nil).Run(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("shell did not stop after cancellation")
	}
	assert.True(t, strings.HasSuffix(out.String(), "\n\nProgram interrupted by user. Goodbye!\n"))
}
