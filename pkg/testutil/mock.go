package testutil

import (
	"context"
	"sync"

	"github.com/riple-app/backend/internal/appstate"
	"github.com/riple-app/backend/pkg/api/openai"
)

// InMemoryPersister keeps state blobs in a map, one per key.
type InMemoryPersister struct {
	mu     sync.Mutex
	states map[string]appstate.AppState

	SaveErr error
	LoadErr error
}

func NewInMemoryPersister() *InMemoryPersister {
	return &InMemoryPersister{states: map[string]appstate.AppState{}}
}

func (p *InMemoryPersister) Save(ctx context.Context, key string, state appstate.AppState) error {
	if p.SaveErr != nil {
		return p.SaveErr
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.states[key] = state
	return nil
}

func (p *InMemoryPersister) Load(ctx context.Context, key string) (*appstate.AppState, error) {
	if p.LoadErr != nil {
		return nil, p.LoadErr
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	state, ok := p.states[key]
	if !ok {
		return nil, appstate.ErrNoState
	}

	return &state, nil
}

func (p *InMemoryPersister) Delete(ctx context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.states, key)
	return nil
}

// MockOpenAICaller answers chat completions with a canned function.
type MockOpenAICaller struct {
	CreateChatCompletionFunc func(
		ctx context.Context, req openai.ChatCompletionRequest,
	) (*openai.ChatCompletionResponse, error)
}

func (m *MockOpenAICaller) CreateChatCompletion(
	ctx context.Context, req openai.ChatCompletionRequest,
) (*openai.ChatCompletionResponse, error) {
	return m.CreateChatCompletionFunc(ctx, req)
}

// ChatCompletionResponseOf wraps one assistant message the way the API
// returns it.
func ChatCompletionResponseOf(content string) *openai.ChatCompletionResponse {
	return &openai.ChatCompletionResponse{
		Choices: []openai.Choice{
			{Message: openai.Message{Role: "assistant", Content: content}},
		},
	}
}
