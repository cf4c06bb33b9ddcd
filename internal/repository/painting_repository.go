package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/painting-catalog/internal/database"
	"github.com/iliyamo/painting-catalog/internal/model"
)

// paintingJoin is the six-table inner join behind every painting report.
// A painting without a painted or visitable row is left out on purpose.
const paintingJoin = `FROM painting p
		JOIN painted pt ON p.serial_number = pt.painting_serial_number
		JOIN artist a ON pt.artist_id = a.id
		JOIN visitable v ON p.serial_number = v.painting_serial_number
		JOIN city c ON v.city_country_iso = c.country_iso AND v.city_zipcode = c.zipcode
		JOIN country co ON c.country_iso = co.iso`

const paintingColumns = `p.serial_number,
			p.title,
			p.style_type,
			p.year_created,
			` + artistNameExpr + ` AS artist_name,
			c.name AS city_name,
			co.country_name,
			p.wikipedia_url`

// PaintingRow is one line of the "All Paintings" report and of search results.
type PaintingRow struct {
	SerialNumber int64   `json:"serial_number"`
	Title        string  `json:"title"`
	Style        string  `json:"style_type"`
	YearCreated  int     `json:"year_created"`
	ArtistName   string  `json:"artist_name"`
	CityName     string  `json:"city_name"`
	CountryName  string  `json:"country_name"`
	WikipediaURL *string `json:"wikipedia_url"`
}

// CityPaintingRow is one line of the "Paintings by City" report.
type CityPaintingRow struct {
	Title       string `json:"title"`
	Style       string `json:"style_type"`
	YearCreated int    `json:"year_created"`
	ArtistName  string `json:"artist_name"`
}

// ArtistPaintingRow is one line of the "Paintings by Artist" report.
type ArtistPaintingRow struct {
	Title       string `json:"title"`
	Style       string `json:"style_type"`
	YearCreated int    `json:"year_created"`
	CityName    string `json:"city_name"`
	CountryName string `json:"country_name"`
}

// StylePaintingRow is one line of the "Paintings by Style" report.
type StylePaintingRow struct {
	Title       string `json:"title"`
	YearCreated int    `json:"year_created"`
	ArtistName  string `json:"artist_name"`
	CityName    string `json:"city_name"`
}

// NewPainting carries everything the Add Painting form submits.
type NewPainting struct {
	Title        string
	Style        string
	YearCreated  int
	WikipediaURL string // empty is stored as NULL
	ArtistID     int64
	City         model.CityKey
}

// PaintingRepo encapsulates the painting queries and the three-table insert.
type PaintingRepo struct {
	db database.Querier
}

func NewPaintingRepo(db database.Querier) *PaintingRepo {
	return &PaintingRepo{db: db}
}

type txRunner interface {
	InTx(ctx context.Context, fn func(tx *database.Tx) error) error
}

// Create stores the painting, its artist link and its location link in one
// transaction: afterwards either all three rows exist or none does. When the
// repository already runs on a transaction the statements join it.
func (r *PaintingRepo) Create(ctx context.Context, np NewPainting) (*model.Painting, error) {
	var out *model.Painting
	var err error
	if runner, ok := r.db.(txRunner); ok {
		err = runner.InTx(ctx, func(tx *database.Tx) error {
			var ierr error
			out, ierr = insertPainting(ctx, tx, np)
			return ierr
		})
	} else {
		out, err = insertPainting(ctx, r.db, np)
	}
	if err != nil {
		return nil, database.Classify(err)
	}
	return out, nil
}

func insertPainting(ctx context.Context, q database.Querier, np NewPainting) (*model.Painting, error) {
	url := sql.NullString{String: np.WikipediaURL, Valid: np.WikipediaURL != ""}
	serial, err := database.InsertID(ctx, q,
		"INSERT INTO painting (title, style_type, year_created, wikipedia_url) VALUES (?, ?, ?, ?)",
		"serial_number", np.Title, np.Style, np.YearCreated, url)
	if err != nil {
		return nil, err
	}
	if _, err := q.ExecContext(ctx,
		"INSERT INTO painted (artist_id, painting_serial_number) VALUES (?, ?)",
		np.ArtistID, serial); err != nil {
		return nil, err
	}
	if _, err := q.ExecContext(ctx,
		"INSERT INTO visitable (city_country_iso, city_zipcode, painting_serial_number) VALUES (?, ?, ?)",
		np.City.CountryISO, np.City.Zipcode, serial); err != nil {
		return nil, err
	}
	return &model.Painting{
		SerialNumber: serial,
		Title:        np.Title,
		Style:        np.Style,
		YearCreated:  np.YearCreated,
		WikipediaURL: strPtr(url),
	}, nil
}

// GetBySerial fetches a bare painting row; sql.ErrNoRows when missing.
func (r *PaintingRepo) GetBySerial(ctx context.Context, serial int64) (model.Painting, error) {
	const q = `SELECT serial_number, title, style_type, year_created, wikipedia_url
	           FROM painting WHERE serial_number = ?`
	var p model.Painting
	var url sql.NullString
	err := r.db.QueryRowContext(ctx, q, serial).Scan(&p.SerialNumber, &p.Title, &p.Style, &p.YearCreated, &url)
	if err != nil {
		return model.Painting{}, err
	}
	p.WikipediaURL = strPtr(url)
	return p, nil
}

// ListAll returns the "All Paintings" report ordered by serial number.
func (r *PaintingRepo) ListAll(ctx context.Context) ([]PaintingRow, error) {
	q := "SELECT " + paintingColumns + "\n\t\t" + paintingJoin + "\n\t\tORDER BY p.serial_number"
	return r.queryPaintingRows(ctx, q)
}

// ListByCity returns the paintings located in one city, oldest first.
func (r *PaintingRepo) ListByCity(ctx context.Context, key model.CityKey) ([]CityPaintingRow, error) {
	const q = `SELECT
			p.title,
			p.style_type,
			p.year_created,
			` + artistNameExpr + ` AS artist_name
		FROM painting p
		JOIN visitable v ON p.serial_number = v.painting_serial_number
		JOIN painted pt ON p.serial_number = pt.painting_serial_number
		JOIN artist a ON pt.artist_id = a.id
		WHERE v.city_country_iso = ? AND v.city_zipcode = ?
		ORDER BY p.year_created`
	rows, err := r.db.QueryContext(ctx, q, key.CountryISO, key.Zipcode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CityPaintingRow{}
	for rows.Next() {
		var row CityPaintingRow
		if err := rows.Scan(&row.Title, &row.Style, &row.YearCreated, &row.ArtistName); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListByArtist returns the paintings of one artist with their location,
// oldest first.
func (r *PaintingRepo) ListByArtist(ctx context.Context, artistID int64) ([]ArtistPaintingRow, error) {
	const q = `SELECT
			p.title,
			p.style_type,
			p.year_created,
			c.name AS city_name,
			co.country_name
		FROM painting p
		JOIN painted pt ON p.serial_number = pt.painting_serial_number
		JOIN visitable v ON p.serial_number = v.painting_serial_number
		JOIN city c ON v.city_country_iso = c.country_iso AND v.city_zipcode = c.zipcode
		JOIN country co ON c.country_iso = co.iso
		WHERE pt.artist_id = ?
		ORDER BY p.year_created`
	rows, err := r.db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ArtistPaintingRow{}
	for rows.Next() {
		var row ArtistPaintingRow
		if err := rows.Scan(&row.Title, &row.Style, &row.YearCreated, &row.CityName, &row.CountryName); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListByStyle returns the paintings tagged with style, oldest first.
func (r *PaintingRepo) ListByStyle(ctx context.Context, style string) ([]StylePaintingRow, error) {
	const q = `SELECT
			p.title,
			p.year_created,
			` + artistNameExpr + ` AS artist_name,
			c.name AS city_name
		FROM painting p
		JOIN painted pt ON p.serial_number = pt.painting_serial_number
		JOIN artist a ON pt.artist_id = a.id
		JOIN visitable v ON p.serial_number = v.painting_serial_number
		JOIN city c ON v.city_country_iso = c.country_iso AND v.city_zipcode = c.zipcode
		WHERE p.style_type = ?
		ORDER BY p.year_created`
	rows, err := r.db.QueryContext(ctx, q, style)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []StylePaintingRow{}
	for rows.Next() {
		var row StylePaintingRow
		if err := rows.Scan(&row.Title, &row.YearCreated, &row.ArtistName, &row.CityName); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Styles returns the distinct style tags present in the catalog.
func (r *PaintingRepo) Styles(ctx context.Context) ([]string, error) {
	return listStrings(ctx, r.db, `SELECT DISTINCT style_type FROM painting ORDER BY style_type`)
}

func (r *PaintingRepo) queryPaintingRows(ctx context.Context, q string, args ...any) ([]PaintingRow, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []PaintingRow{}
	for rows.Next() {
		var row PaintingRow
		var url sql.NullString
		if err := rows.Scan(&row.SerialNumber, &row.Title, &row.Style, &row.YearCreated,
			&row.ArtistName, &row.CityName, &row.CountryName, &url); err != nil {
			return nil, err
		}
		row.WikipediaURL = strPtr(url)
		out = append(out, row)
	}
	return out, rows.Err()
}

func listStrings(ctx context.Context, db database.Querier, q string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool { return errors.Is(err, sql.ErrNoRows) }
