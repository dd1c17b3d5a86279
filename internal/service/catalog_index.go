package service

import "github.com/apex-supplements/store-api/internal/models"

// catalogIndex maps product ids to products for one reconciliation call.
type catalogIndex map[models.ID]models.Product

// newCatalogIndex indexes products in a single pass. Products without an id
// are not addressable and are skipped; for duplicate ids the last one wins.
func newCatalogIndex(products []models.Product) catalogIndex {
	index := make(catalogIndex, len(products))
	for _, p := range products {
		if p.ID == "" {
			continue
		}
		index[p.ID] = p
	}
	return index
}

func (idx catalogIndex) lookup(id models.ID) (models.Product, bool) {
	p, ok := idx[id]
	return p, ok
}
