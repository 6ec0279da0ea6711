package ports

import (
	"context"

	"herbnet/domain/core/entities"
)

// DataSource abstracts where herb, disease, and pathway annotations come
// from. Implementations live in infrastructure; lookups that cannot find
// the named entity return a not-found error, and slow backends map their
// deadline failures to a datasource timeout error.
type DataSource interface {
	// LookupHerb resolves a herb and its compound annotations by name
	LookupHerb(ctx context.Context, name string) (*entities.Herb, error)

	// LookupDisease resolves a disease and its known target genes by name
	LookupDisease(ctx context.Context, name string) (*entities.Disease, error)

	// PathwayCatalog returns every pathway available for enrichment
	PathwayCatalog(ctx context.Context) ([]entities.Pathway, error)
}
