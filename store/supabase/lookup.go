package supabase

import (
	"context"
	"fmt"

	"leadhub/models"
	"leadhub/store"
)

type lookupRepo struct{ *backend }

func (r lookupRepo) List(ctx context.Context, table string) ([]models.Lookup, error) {
	if !store.ValidLookupTable(table) {
		return nil, fmt.Errorf("%w: unknown lookup table %q", store.ErrValidation, table)
	}
	var rows []models.Lookup
	_, err := r.client.From(table).
		Select("*", "", false).
		Order("id", ascending).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return rows, nil
}
