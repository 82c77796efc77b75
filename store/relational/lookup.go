package relational

import (
	"context"
	"fmt"

	"leadhub/models"
	"leadhub/store"
)

type lookupRepo struct{ *backend }

// List returns a lookup table's rows in insertion order.
func (r lookupRepo) List(ctx context.Context, table string) ([]models.Lookup, error) {
	if !store.ValidLookupTable(table) {
		return nil, fmt.Errorf("%w: unknown lookup table %q", store.ErrValidation, table)
	}
	var rows []models.Lookup
	if err := r.db.WithContext(ctx).Table(table).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return rows, nil
}
