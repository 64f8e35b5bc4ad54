package llm

import "context"

// MockProvider is a test double for Provider. GenerateFunc, when set,
// controls the response; otherwise Text is returned verbatim.
type MockProvider struct {
	Text         string
	GenerateFunc func(ctx context.Context, req Request) (*Response, error)
	Requests     []Request
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.Requests = append(m.Requests, req)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return &Response{Text: m.Text, Model: m.ModelID()}, nil
}

func (m *MockProvider) ModelID() string { return "mock-model" }
