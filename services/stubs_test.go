package services

import (
	"context"

	"argubot/models"
)

type responderFunc func(prompt string) (string, error)

func (f responderFunc) Generate(_ context.Context, prompt string) (string, error) {
	return f(prompt)
}

type finderFunc func(query string) ([]models.Fact, error)

func (f finderFunc) Search(_ context.Context, query string) ([]models.Fact, error) {
	return f(query)
}

func noFacts() FactFinder {
	return finderFunc(func(string) ([]models.Fact, error) {
		return nil, nil
	})
}

func staticResponder(text string) Responder {
	return responderFunc(func(string) (string, error) {
		return text, nil
	})
}
