package service

import (
	"context"
	"errors"
	"fmt"

	"ideaforge-backend/llm"
)

var (
	ErrInvalidProfile     = errors.New("invalid profile")
	ErrIdeaNotFound       = errors.New("idea not found")
	ErrInvalidVoteType    = errors.New("vote type must be up or down")
	ErrInvalidSortOrder   = errors.New("sortBy must be recent, popular or viability")
	ErrStore              = errors.New("store error")
	ErrMissingUserID      = errors.New("userId is required")
	ErrCompletionNotFound = errors.New("completion not found")
)

// MissingFieldError names the profile field that failed validation
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("invalid profile: %s is required", e.Field)
}

// Is lets errors.Is(err, ErrInvalidProfile) match
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrInvalidProfile
}

// GenerationFailure classifies why the model output could not be used
type GenerationFailure string

const (
	FailureEmptyResponse     GenerationFailure = "empty_response"
	FailureMalformedResponse GenerationFailure = "malformed_response"
	FailureTimeout           GenerationFailure = "timeout"
	FailureNetworkError      GenerationFailure = "network_error"
)

// MalformedResponseError carries the parse problem with the model output
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return "malformed model response: " + e.Reason
}

func malformed(format string, args ...any) error {
	return &MalformedResponseError{Reason: fmt.Sprintf(format, args...)}
}

// classifyFailure maps a model or parse error onto a failure kind
func classifyFailure(err error) GenerationFailure {
	var m *MalformedResponseError
	switch {
	case errors.As(err, &m):
		return FailureMalformedResponse
	case errors.Is(err, llm.ErrEmptyResponse):
		return FailureEmptyResponse
	case errors.Is(err, context.DeadlineExceeded):
		return FailureTimeout
	default:
		return FailureNetworkError
	}
}
