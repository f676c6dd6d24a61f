package symptom

import (
	"context"
	"fmt"
)

// fakeCompletion replays a canned reply or error and records prompts.
type fakeCompletion struct {
	reply string
	err   error

	calls       int
	userPrompts []string
}

func (f *fakeCompletion) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error) {
	f.calls++
	f.userPrompts = append(f.userPrompts, userPrompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// fakeSearch serves fixture products keyed by query.
type fakeSearch struct {
	products map[string][]Product
	failOn   string

	queries []string
}

func (f *fakeSearch) Search(ctx context.Context, query, domain string, maxResults int) ([]Product, error) {
	f.queries = append(f.queries, query)
	if f.failOn != "" && query == f.failOn {
		return nil, fmt.Errorf("backend unreachable")
	}
	products := f.products[query]
	if maxResults > 0 && len(products) > maxResults {
		products = products[:maxResults]
	}
	return products, nil
}
