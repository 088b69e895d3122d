package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hiring-assistant/internal/domain"
	"go-hiring-assistant/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresAPIKey(t *testing.T) {
	for _, kind := range llm.Kinds {
		t.Run(string(kind), func(t *testing.T) {
			p, err := llm.New(llm.Config{Kind: kind})
			assert.Nil(t, p)

			var cfgErr *domain.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Contains(t, cfgErr.Message, string(kind))
		})
	}
}

func TestNewBuildsEachKind(t *testing.T) {
	for _, kind := range llm.Kinds {
		p, err := llm.New(llm.Config{Kind: kind, APIKey: "key"})
		require.NoError(t, err)
		assert.Equal(t, string(kind), p.Name())
	}
}

func TestParseKind(t *testing.T) {
	k, err := llm.ParseKind(" OpenAI ")
	require.NoError(t, err)
	assert.Equal(t, llm.KindOpenAI, k)

	_, err = llm.ParseKind("anthropic-local")
	var cfgErr *domain.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestOptionsResolve(t *testing.T) {
	opts := llm.Options{
		DefaultProvider: llm.KindGroq,
		APIKeys:         map[llm.Kind]string{llm.KindGroq: "env-groq"},
		Models:          map[llm.Kind]string{llm.KindGroq: "llama3-8b-8192"},
	}

	cfg, err := opts.Resolve(domain.Settings{})
	require.NoError(t, err)
	assert.Equal(t, llm.KindGroq, cfg.Kind)
	assert.Equal(t, "env-groq", cfg.APIKey)
	assert.Equal(t, "llama3-8b-8192", cfg.Model)
	assert.True(t, opts.Configured())

	cfg, err = opts.Resolve(domain.Settings{Provider: "openai", APIKey: "session-key", Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, llm.KindOpenAI, cfg.Kind)
	assert.Equal(t, "session-key", cfg.APIKey)
	assert.Equal(t, "gpt-4o", cfg.Model)

	_, err = opts.Factory()(domain.Settings{Provider: "openai"})
	var cfgErr *domain.ConfigError
	assert.True(t, errors.As(err, &cfgErr))

	assert.False(t, llm.Options{}.Configured())
}

func TestOpenAICompatibleStream(t *testing.T) {
	var gotReq map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&gotReq)

		w.Header().Set("Content-Type", "text/event-stream")
		for _, chunk := range []string{`{\"questions\":`, `[{\"question\":\"Q\"}]}`} {
			fmt.Fprintf(w, "data: {\"id\":\"1\",\"object\":\"chat.completion.chunk\",\"choices\":[{\"index\":0,\"delta\":{\"content\":\"%s\"}}]}\n\n", chunk)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	p, err := llm.New(llm.Config{Kind: llm.KindGroq, APIKey: "test-key", BaseURL: srv.URL, Model: "llama-3.1-8b-instant"})
	require.NoError(t, err)

	stream, err := p.Stream(context.Background(), "system text", "user text")
	require.NoError(t, err)

	text, err := domain.Collect(stream)
	require.NoError(t, err)
	assert.Equal(t, `{"questions":[{"question":"Q"}]}`, text)
	assert.Equal(t, "llama-3.1-8b-instant", gotReq["model"])
	assert.Equal(t, true, gotReq["stream"])
	messages, _ := gotReq["messages"].([]interface{})
	assert.Len(t, messages, 2)
}

func TestOpenAICompatibleAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"invalid api key","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	p, err := llm.New(llm.Config{Kind: llm.KindOpenAI, APIKey: "bad", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = p.Stream(context.Background(), "s", "u")
	var svcErr *domain.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "openai", svcErr.Provider)
}
