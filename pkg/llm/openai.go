package llm

import (
	"context"
	"errors"
	"io"
	"net/http"

	"go-hiring-assistant/internal/domain"

	openai "github.com/sashabaranov/go-openai"
)

// openAICompatible serves both OpenAI and Groq, which speaks the same chat API.
type openAICompatible struct {
	name   string
	model  string
	client *openai.Client
}

func newOpenAICompatible(name string, cfg Config, httpClient *http.Client) *openAICompatible {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = httpClient

	return &openAICompatible{
		name:   name,
		model:  cfg.Model,
		client: openai.NewClientWithConfig(clientCfg),
	}
}

func (p *openAICompatible) Name() string { return p.name }

func (p *openAICompatible) Stream(ctx context.Context, system, prompt string) (domain.TextStream, error) {
	stream, err := p.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: DefaultTemperature,
		Stream:      true,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, &domain.ServiceError{Provider: p.name, Err: err}
	}
	return &openAIStream{provider: p.name, stream: stream}, nil
}

type openAIStream struct {
	provider string
	stream   *openai.ChatCompletionStream
}

func (s *openAIStream) Recv() (string, error) {
	resp, err := s.stream.Recv()
	if errors.Is(err, io.EOF) {
		return "", io.EOF
	}
	if err != nil {
		return "", &domain.ServiceError{Provider: s.provider, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Delta.Content, nil
}

func (s *openAIStream) Close() error {
	return s.stream.Close()
}
