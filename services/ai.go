package services

import (
	"context"

	"argubot/models"
)

// Responder generates text from a rendered prompt. The Gemini client
// implements it in production; tests use scripted stubs.
type Responder interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// FactFinder looks up short factual snippets for a query. Implementations
// return at most a handful of facts; callers treat a failure as an empty
// result rather than aborting the turn.
type FactFinder interface {
	Search(ctx context.Context, query string) ([]models.Fact, error)
}
