package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/painting-catalog/internal/database"
	"github.com/iliyamo/painting-catalog/internal/model"
)

// ArtistSummary is one line of the "All Artists" report.
type ArtistSummary struct {
	model.Artist
	NumberOfPaintings int64 `json:"number_of_paintings"`
}

// ArtistRepo encapsulates the queries over the artist table.
type ArtistRepo struct {
	db database.Querier
}

func NewArtistRepo(db database.Querier) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// Create inserts an artist and fills in the generated ID. A nil DeathYear
// is stored as NULL (living artist).
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	const q = "INSERT INTO artist (first_name, last_name, birth_year, death_year) VALUES (?, ?, ?, ?)"
	var death sql.NullInt64
	if a.DeathYear != nil {
		death = sql.NullInt64{Int64: int64(*a.DeathYear), Valid: true}
	}
	id, err := database.InsertID(ctx, r.db, q, "id", a.FirstName, a.LastName, a.BirthYear, death)
	if err != nil {
		return database.Classify(err)
	}
	a.ID = id
	return nil
}

// GetByID fetches one artist; sql.ErrNoRows when it does not exist.
func (r *ArtistRepo) GetByID(ctx context.Context, id int64) (model.Artist, error) {
	const q = "SELECT id, first_name, last_name, birth_year, death_year FROM artist WHERE id = ?"
	return scanArtist(r.db.QueryRowContext(ctx, q, id))
}

// ListAll returns every artist ordered by last name, then first name.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]model.Artist, error) {
	const q = `SELECT id, first_name, last_name, birth_year, death_year
	           FROM artist ORDER BY last_name, first_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Artist{}
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListWithCounts returns the "All Artists" report with the number of
// paintings attributed to each artist, zero included.
func (r *ArtistRepo) ListWithCounts(ctx context.Context) ([]ArtistSummary, error) {
	const q = `SELECT
			a.id,
			a.first_name,
			a.last_name,
			a.birth_year,
			a.death_year,
			COUNT(pt.painting_serial_number) AS number_of_paintings
		FROM artist a
		LEFT JOIN painted pt ON a.id = pt.artist_id
		GROUP BY a.id, a.first_name, a.last_name, a.birth_year, a.death_year
		ORDER BY a.last_name, a.first_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ArtistSummary{}
	for rows.Next() {
		var s ArtistSummary
		var death sql.NullInt64
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.BirthYear, &death, &s.NumberOfPaintings); err != nil {
			return nil, err
		}
		s.DeathYear = intPtr(death)
		out = append(out, s)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArtist(s scanner) (model.Artist, error) {
	var a model.Artist
	var death sql.NullInt64
	if err := s.Scan(&a.ID, &a.FirstName, &a.LastName, &a.BirthYear, &death); err != nil {
		return model.Artist{}, err
	}
	a.DeathYear = intPtr(death)
	return a, nil
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func strPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
