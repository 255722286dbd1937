package itinerary

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type panickingLLM struct{}

func (panickingLLM) Generate(ctx context.Context, msgs Messages) (string, error) {
	panic("boom")
}

type blockingLLM struct{}

func (blockingLLM) Generate(ctx context.Context, msgs Messages) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

// deadlineLLM records the deadline of the context it is called with.
type deadlineLLM struct {
	deadline time.Time
	ok       bool
}

func (d *deadlineLLM) Generate(ctx context.Context, msgs Messages) (string, error) {
	d.deadline, d.ok = ctx.Deadline()
	return "Day 1: Nishiki Market.", nil
}

func TestClient_Generate_Success(t *testing.T) {
	mockLLM := NewMockLLM("  Day 1: Fushimi Inari at 07:00.\n")
	config := DefaultLLMConfig()
	config.Model = "test-model"

	client := NewClient(mockLLM, config, zaptest.NewLogger(t))
	res := client.Generate(context.Background(), mustRequest(t, kyotoInput()))

	require.True(t, res.OK(), "expected Ok, got Failed(%s)", res.Reason())
	assert.Equal(t, "Day 1: Fushimi Inari at 07:00.", res.Text(), "text not trimmed")
	assert.Equal(t, "test-model", res.Model)
	assert.False(t, res.GeneratedAt.IsZero())

	// Verify the two-part exchange
	assert.Equal(t, SystemPrompt, mockLLM.LastMessages.System)
	assert.Contains(t, mockLLM.LastMessages.User, "Kyoto")
	assert.Equal(t, 1, mockLLM.Calls())
}

func TestClient_Generate_Failures(t *testing.T) {
	tests := []struct {
		name       string
		llm        LLM
		wantReason string
	}{
		{
			name:       "authentication",
			llm:        NewMockLLMWithError(fmt.Errorf("%w: 401 invalid key", ErrUnauthorized)),
			wantReason: "authentication",
		},
		{
			name:       "rate limit",
			llm:        NewMockLLMWithError(fmt.Errorf("%w: 429", ErrRateLimited)),
			wantReason: "rate limiting",
		},
		{
			name:       "malformed response",
			llm:        NewMockLLMWithError(fmt.Errorf("%w: %w", ErrLLMFailed, ErrEmptyResponse)),
			wantReason: "no completion",
		},
		{
			name:       "network",
			llm:        NewMockLLMWithError(errors.New("dial tcp: connection refused")),
			wantReason: "connection refused",
		},
		{
			name:       "empty text",
			llm:        NewMockLLM("   \n\t"),
			wantReason: "empty itinerary",
		},
		{
			name:       "panic",
			llm:        panickingLLM{},
			wantReason: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.llm, DefaultLLMConfig(), zaptest.NewLogger(t))
			res := client.Generate(context.Background(), mustRequest(t, kyotoInput()))

			require.False(t, res.OK(), "expected Failed result")
			assert.Empty(t, res.Text(), "failed result carries text")
			assert.Contains(t, res.Reason(), tt.wantReason)
		})
	}
}

func TestClient_Generate_Timeout(t *testing.T) {
	config := DefaultLLMConfig()
	config.Timeout = 20 * time.Millisecond

	client := NewClient(blockingLLM{}, config, nil)
	res := client.Generate(context.Background(), mustRequest(t, kyotoInput()))

	require.False(t, res.OK(), "expected timeout to produce Failed")
	assert.Contains(t, res.Reason(), "did not answer within")
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	for _, timeout := range []time.Duration{0, -time.Second} {
		llm := &deadlineLLM{}
		config := DefaultLLMConfig()
		config.Timeout = timeout

		client := NewClient(llm, config, nil)
		assert.Equal(t, DefaultLLMConfig().Timeout, client.config.Timeout)

		start := time.Now()
		res := client.Generate(context.Background(), mustRequest(t, kyotoInput()))
		require.True(t, res.OK(), res.Reason())
		require.True(t, llm.ok, "generation ran without a deadline")
		assert.WithinDuration(t, start.Add(DefaultLLMConfig().Timeout), llm.deadline, 5*time.Second)
	}
}

func TestClient_Generate_NilLLM(t *testing.T) {
	client := NewClient(nil, DefaultLLMConfig(), nil)
	res := client.Generate(context.Background(), mustRequest(t, kyotoInput()))
	assert.False(t, res.OK(), "expected Failed without an LLM")
}

func TestResultConstructors(t *testing.T) {
	ok := Ok("text")
	assert.True(t, ok.OK())
	assert.Equal(t, "text", ok.Text())
	assert.Empty(t, ok.Reason())

	failed := Failed("why")
	assert.False(t, failed.OK())
	assert.Empty(t, failed.Text())
	assert.Equal(t, "why", failed.Reason())
}
