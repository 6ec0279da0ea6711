package memory

import (
	"context"
	"fmt"
	"sync"

	"herbnet/domain/core/entities"
	pkgerrors "herbnet/pkg/errors"
)

// DataSource is an in-memory annotation store. It backs tests and the
// default deployment profile; the seeded variant ships a small curated
// slice of herb, disease, and pathway annotations.
type DataSource struct {
	mu       sync.RWMutex
	herbs    map[string]*entities.Herb
	diseases map[string]*entities.Disease
	catalog  []entities.Pathway
}

// NewDataSource creates an empty in-memory store
func NewDataSource() *DataSource {
	return &DataSource{
		herbs:    make(map[string]*entities.Herb),
		diseases: make(map[string]*entities.Disease),
	}
}

// AddHerb registers or replaces a herb annotation
func (d *DataSource) AddHerb(herb *entities.Herb) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.herbs[herb.Name()] = herb
}

// AddDisease registers or replaces a disease annotation
func (d *DataSource) AddDisease(disease *entities.Disease) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.diseases[disease.Name()] = disease
}

// SetCatalog replaces the pathway catalog
func (d *DataSource) SetCatalog(catalog []entities.Pathway) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.catalog = make([]entities.Pathway, len(catalog))
	copy(d.catalog, catalog)
}

// LookupHerb resolves a herb by exact name
func (d *DataSource) LookupHerb(_ context.Context, name string) (*entities.Herb, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	herb, ok := d.herbs[name]
	if !ok {
		return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("herb %q not found", name))
	}
	return herb, nil
}

// LookupDisease resolves a disease by exact name
func (d *DataSource) LookupDisease(_ context.Context, name string) (*entities.Disease, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	disease, ok := d.diseases[name]
	if !ok {
		return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("disease %q not found", name))
	}
	return disease, nil
}

// PathwayCatalog returns the full pathway catalog
func (d *DataSource) PathwayCatalog(_ context.Context) ([]entities.Pathway, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	catalog := make([]entities.Pathway, len(d.catalog))
	copy(catalog, d.catalog)
	return catalog, nil
}
