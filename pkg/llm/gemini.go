package llm

import (
	"context"
	"io"
	"iter"
	"net/http"

	"go-hiring-assistant/internal/domain"

	"google.golang.org/genai"
)

type gemini struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

func newGemini(cfg Config, httpClient *http.Client) *gemini {
	return &gemini{apiKey: cfg.APIKey, model: cfg.Model, httpClient: httpClient}
}

func (g *gemini) Name() string { return string(KindGemini) }

func (g *gemini) Stream(ctx context.Context, system, prompt string) (domain.TextStream, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     g.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.httpClient,
	})
	if err != nil {
		return nil, &domain.ServiceError{Provider: g.Name(), Err: err}
	}

	seq := client.Models.GenerateContentStream(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](DefaultTemperature),
	})
	next, stop := iter.Pull2(seq)
	return &geminiStream{next: next, stop: stop}, nil
}

type geminiStream struct {
	next func() (*genai.GenerateContentResponse, error, bool)
	stop func()
}

func (s *geminiStream) Recv() (string, error) {
	resp, err, ok := s.next()
	if !ok {
		return "", io.EOF
	}
	if err != nil {
		return "", &domain.ServiceError{Provider: string(KindGemini), Err: err}
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

func (s *geminiStream) Close() error {
	s.stop()
	return nil
}
