package symptom

import (
	"context"
	"fmt"
)

// Locator resolves medicine names and symptom text into product listings.
type Locator struct {
	search SearchClient
	domain string
}

func NewLocator(search SearchClient, domain string) *Locator {
	return &Locator{search: search, domain: domain}
}

// LocateForMedicines issues one search per medicine, in order, tagging each
// listing with the medicine it was found for. A failed search aborts the
// remaining lookups; no partial listings are returned.
func (l *Locator) LocateForMedicines(ctx context.Context, medicines []string, maxPerMedicine int) ([]Product, error) {
	var all []Product
	for _, medicine := range medicines {
		products, err := l.search.Search(ctx, medicine, l.domain, maxPerMedicine)
		if err != nil {
			return nil, fmt.Errorf("product search for %q: %w", medicine, err)
		}
		for _, p := range products {
			p.MedicineName = medicine
			all = append(all, p)
		}
	}
	return all, nil
}

// LocateForSymptoms searches with a query derived from the raw symptom text
// instead of a medicine name, and reports the query it used.
func (l *Locator) LocateForSymptoms(ctx context.Context, symptoms string, maxResults int) ([]Product, string, error) {
	query := BuildSearchQuery(symptoms)
	products, err := l.search.Search(ctx, query, l.domain, maxResults)
	if err != nil {
		return nil, query, fmt.Errorf("product search for %q: %w", query, err)
	}
	return products, query, nil
}
