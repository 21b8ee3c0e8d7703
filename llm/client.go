// Package llm wraps the chat-completion endpoints used for idea generation.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the model answered without any text
var ErrEmptyResponse = errors.New("model returned an empty completion")

// Request is a single system+user chat completion call
type Request struct {
	System          string
	User            string
	Temperature     float32
	MaxOutputTokens int32
	JSON            bool // Ask the provider for a JSON object response
}

// Client produces one text completion for a request
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
