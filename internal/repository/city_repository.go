package repository

import (
	"context"

	"github.com/iliyamo/painting-catalog/internal/database"
	"github.com/iliyamo/painting-catalog/internal/model"
)

// CitySummary is one line of the "All Cities" report.
type CitySummary struct {
	CountryISO     string `json:"country_iso"`
	Zipcode        string `json:"zipcode"`
	Name           string `json:"name"`
	CountryName    string `json:"country_name"`
	PaintingsCount int64  `json:"paintings_count"`
}

// CityRepo encapsulates the queries over the city table.
type CityRepo struct {
	db database.Querier
}

func NewCityRepo(db database.Querier) *CityRepo {
	return &CityRepo{db: db}
}

// Create inserts a city. An unknown country surfaces as ErrForeignKey and
// an existing (country, zipcode) pair as ErrDuplicate.
func (r *CityRepo) Create(ctx context.Context, c model.City) error {
	const q = "INSERT INTO city (country_iso, zipcode, name) VALUES (?, ?, ?)"
	_, err := r.db.ExecContext(ctx, q, c.CountryISO, c.Zipcode, c.Name)
	return database.Classify(err)
}

// ListAll returns every city ordered by name, for select boxes.
func (r *CityRepo) ListAll(ctx context.Context) ([]model.City, error) {
	const q = `SELECT country_iso, zipcode, name FROM city ORDER BY name, country_iso, zipcode`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.City{}
	for rows.Next() {
		var c model.City
		if err := rows.Scan(&c.CountryISO, &c.Zipcode, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListWithCounts returns the "All Cities" report: every city with its
// country name and the number of paintings located there, busiest first.
func (r *CityRepo) ListWithCounts(ctx context.Context) ([]CitySummary, error) {
	const q = `SELECT
			c.country_iso,
			c.zipcode,
			c.name,
			co.country_name,
			COUNT(v.painting_serial_number) AS paintings_count
		FROM city c
		JOIN country co ON c.country_iso = co.iso
		LEFT JOIN visitable v ON c.country_iso = v.city_country_iso AND c.zipcode = v.city_zipcode
		GROUP BY c.country_iso, c.zipcode, c.name, co.country_name
		ORDER BY paintings_count DESC, c.name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CitySummary{}
	for rows.Next() {
		var s CitySummary
		if err := rows.Scan(&s.CountryISO, &s.Zipcode, &s.Name, &s.CountryName, &s.PaintingsCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CountByCountry returns how many cities belong to the country.
func (r *CityRepo) CountByCountry(ctx context.Context, iso string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM city WHERE country_iso = ?`, iso).Scan(&n)
	return n, err
}
