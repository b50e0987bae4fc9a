package mocks

import (
	"context"
	"fmt"
	"sync"
)

// MockVisionModel is a scripted implementation of the VisionModel interface
// for testing. Responses are handed out in order, one per Describe call.
type MockVisionModel struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     int
}

// NewMockVisionModel creates a mock that returns the given responses in order.
func NewMockVisionModel(responses ...string) *MockVisionModel {
	return &MockVisionModel{responses: responses}
}

// FailWith makes every subsequent Describe call return err.
func (m *MockVisionModel) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Describe returns the next scripted response.
func (m *MockVisionModel) Describe(ctx context.Context, image []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", fmt.Errorf("no scripted response for call %d", m.calls)
	}

	response := m.responses[0]
	m.responses = m.responses[1:]
	return response, nil
}

// Calls reports how many times Describe was invoked.
func (m *MockVisionModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
