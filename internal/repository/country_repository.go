package repository

import (
	"context"

	"github.com/iliyamo/painting-catalog/internal/database"
	"github.com/iliyamo/painting-catalog/internal/model"
)

// CountryRepo reads the country table. Countries are created by the setup
// scripts only.
type CountryRepo struct {
	db database.Querier
}

func NewCountryRepo(db database.Querier) *CountryRepo {
	return &CountryRepo{db: db}
}

// ListAll returns every country ordered by display name.
func (r *CountryRepo) ListAll(ctx context.Context) ([]model.Country, error) {
	const q = `SELECT iso, country_name FROM country ORDER BY country_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Country{}
	for rows.Next() {
		var c model.Country
		if err := rows.Scan(&c.ISO, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
