package generation

import "context"

// Request describes one text-generation call on behalf of a team submission.
type Request struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// Response carries the generated text and the token spend of the call.
type Response struct {
	Text       string `json:"text"`
	TokensUsed int    `json:"tokens_used"`
}

// Generator describes an LLM backend able to produce text for a prompt.
// Implementations must return an error on upstream failure rather than an
// empty successful response, so infrastructure failures are never scored.
type Generator interface {
	Generate(ctx context.Context, req Request) (Response, error)
}
