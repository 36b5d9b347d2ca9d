package llm

import (
	"context"
	"errors"
)

// Client abstracts text-generation providers for the tailoring pipeline.
// Implementations perform the call at most once; retries are the caller's
// decision.
type Client interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// GenerateRequest captures one generation call.
type GenerateRequest struct {
	System    string
	Prompt    string
	MaxTokens int
}

var (
	// ErrUnavailable indicates the model endpoint could not be reached.
	ErrUnavailable = errors.New("model endpoint unreachable")

	// ErrTimeout indicates no response arrived within the configured deadline.
	ErrTimeout = errors.New("model request timed out")

	// ErrMalformed indicates the endpoint answered with something other than
	// the expected response envelope.
	ErrMalformed = errors.New("malformed model response")
)
