package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(Options{
		BaseURL: server.URL,
		Model:   "test-model",
	})
	return client, server
}

func TestComplete(t *testing.T) {
	t.Run("parses standard choices shape", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)

			var req chatCompletionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "test-model", req.Model)
			require.Len(t, req.Messages, 1)
			assert.Equal(t, "user", req.Messages[0].Role)
			assert.Equal(t, "hello", req.Messages[0].Content)

			w.Write([]byte(`{"choices":[{"message":{"content":"world"}}]}`))
		})

		content, err := client.Complete(context.Background(), "hello")
		require.NoError(t, err)
		assert.Equal(t, "world", content)
	})

	t.Run("sends bearer token when api key configured", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
		}))
		defer server.Close()

		client := NewClient(Options{BaseURL: server.URL, Model: "m", APIKey: "secret"})
		_, err := client.Complete(context.Background(), "hi")
		require.NoError(t, err)
		assert.Equal(t, "Bearer secret", gotAuth)
	})

	t.Run("falls back to top-level text field", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"text":"plain completion"}`))
		})

		content, err := client.Complete(context.Background(), "hi")
		require.NoError(t, err)
		assert.Equal(t, "plain completion", content)
	})

	t.Run("falls back to response and generated_text fields", func(t *testing.T) {
		for _, body := range []string{
			`{"response":"from response"}`,
			`{"generated_text":"from response"}`,
		} {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})

			content, err := client.Complete(context.Background(), "hi")
			require.NoError(t, err)
			assert.Contains(t, content, "from response")
		}
	})

	t.Run("returns raw body when nothing matches", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json at all"))
		})

		content, err := client.Complete(context.Background(), "hi")
		require.NoError(t, err)
		assert.Equal(t, "not json at all", content)
	})

	t.Run("fails on non-200 status", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		_, err := client.Complete(context.Background(), "hi")
		assert.Error(t, err)
	})

	t.Run("fails on empty content", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(""))
		})

		_, err := client.Complete(context.Background(), "hi")
		assert.Error(t, err)
	})

	t.Run("fails on unreachable endpoint", func(t *testing.T) {
		client := NewClient(Options{BaseURL: "http://127.0.0.1:1", Model: "m"})
		_, err := client.Complete(context.Background(), "hi")
		assert.Error(t, err)
	})
}

func TestExtractContent(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"choices preferred over text", `{"choices":[{"message":{"content":"a"}}],"text":"b"}`, "a"},
		{"empty choices falls through", `{"choices":[],"text":"b"}`, "b"},
		{"invalid json returned verbatim", `oops`, "oops"},
		{"valid json without known fields returned verbatim", `{"foo":"bar"}`, `{"foo":"bar"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractContent([]byte(tt.body)))
		})
	}
}
