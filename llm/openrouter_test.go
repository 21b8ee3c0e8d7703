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

func TestOpenRouterClient_Complete(t *testing.T) {
	t.Run("sends system and user messages", func(t *testing.T) {
		var got chatRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"ideas\":[]}"}}]}`))
		}))
		defer srv.Close()

		c := NewOpenRouterClient("secret", WithBaseURL(srv.URL+"/"), WithModel("test-model"))
		out, err := c.Complete(context.Background(), Request{
			System:          "sys",
			User:            "usr",
			Temperature:     0.8,
			MaxOutputTokens: 4000,
			JSON:            true,
		})
		require.NoError(t, err)
		assert.Equal(t, `{"ideas":[]}`, out)

		assert.Equal(t, "test-model", got.Model)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, "system", got.Messages[0].Role)
		assert.Equal(t, "sys", got.Messages[0].Content)
		assert.Equal(t, "user", got.Messages[1].Role)
		assert.Equal(t, "usr", got.Messages[1].Content)
		assert.InDelta(t, 0.8, got.Temperature, 0.0001)
		assert.Equal(t, int32(4000), got.MaxTokens)
		require.NotNil(t, got.ResponseFormat)
		assert.Equal(t, "json_object", got.ResponseFormat.Type)
	})

	t.Run("empty choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()

		c := NewOpenRouterClient("k", WithBaseURL(srv.URL))
		_, err := c.Complete(context.Background(), Request{User: "x"})
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})

	t.Run("blank content", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"   "}}]}`))
		}))
		defer srv.Close()

		c := NewOpenRouterClient("k", WithBaseURL(srv.URL))
		_, err := c.Complete(context.Background(), Request{User: "x"})
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
		}))
		defer srv.Close()

		c := NewOpenRouterClient("k", WithBaseURL(srv.URL))
		_, err := c.Complete(context.Background(), Request{User: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
		assert.NotErrorIs(t, err, ErrEmptyResponse)
	})

	t.Run("cancelled context", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := NewOpenRouterClient("k", WithBaseURL(srv.URL))
		_, err := c.Complete(ctx, Request{User: "x"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
