package llm

import "context"

// MockClient implements Client for tests. Configure behavior via the
// function field; call counts are tracked for assertions.
type MockClient struct {
	GenerateResponseFunc  func(ctx context.Context, prompt, systemMessage string, params SamplingParams) (string, error)
	GenerateResponseCalls int
	LastPrompt            string
	LastSystemMessage     string
}

var _ Client = (*MockClient)(nil)

func (m *MockClient) GenerateResponse(ctx context.Context, prompt, systemMessage string, params SamplingParams) (string, error) {
	m.GenerateResponseCalls++
	m.LastPrompt = prompt
	m.LastSystemMessage = systemMessage
	if m.GenerateResponseFunc != nil {
		return m.GenerateResponseFunc(ctx, prompt, systemMessage, params)
	}
	return "", nil
}
