package itinerary

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockLLM is a deterministic LLM implementation for testing.
// It returns predictable responses based on prompt content.
type MockLLM struct {
	// Response is the fixed text returned by Generate.
	// If empty, a default response is generated from the prompt.
	Response string

	// Error, if set, is returned by Generate instead of a response.
	Error error

	// LastMessages stores the most recent exchange passed to Generate.
	LastMessages Messages

	mu    sync.Mutex
	calls int
}

// NewMockLLM creates a mock LLM with the given fixed response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

// NewMockLLMWithError creates a mock LLM that always returns an error.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Error: err}
}

// Generate returns the configured response or generates a deterministic one.
func (m *MockLLM) Generate(ctx context.Context, msgs Messages) (string, error) {
	m.mu.Lock()
	m.calls++
	m.LastMessages = msgs
	m.mu.Unlock()

	if m.Error != nil {
		return "", m.Error
	}

	if m.Response != "" {
		return m.Response, nil
	}

	return generateMockResponse(msgs.User), nil
}

// Calls reports how many times Generate has been invoked.
func (m *MockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// generateMockResponse creates a predictable day-by-day plan from the prompt.
func generateMockResponse(prompt string) string {
	days := 1
	if _, err := fmt.Sscanf(extractAfter(prompt, "Trip length:"), "%d", &days); err != nil || days < 1 {
		days = 1
	}
	destination := extractAfter(prompt, "Destination:")
	if destination == "" {
		destination = "the destination"
	}

	var b strings.Builder
	for d := 1; d <= days; d++ {
		b.WriteString(fmt.Sprintf("Day %d in %s\n", d, destination))
		b.WriteString("- Morning (09:00): Walk through the old town.\n")
		b.WriteString("- Afternoon (13:00): Lunch at a local market, then a museum.\n")
		b.WriteString("- Evening (19:00): Dinner at a neighbourhood restaurant.\n")
		if d < days {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// extractAfter returns the trimmed remainder of the first line starting with label.
func extractAfter(prompt, label string) string {
	for _, line := range strings.Split(prompt, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, label) {
			return strings.TrimSpace(strings.TrimPrefix(line, label))
		}
	}
	return ""
}
