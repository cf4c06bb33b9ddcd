package handler

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/iliyamo/painting-catalog/internal/model"
	"github.com/iliyamo/painting-catalog/internal/repository"
)

const (
	minYear             = 1000
	defaultYearCreated  = 2000
	errCodeValidation   = "validation_error"
	errCodeConflict     = "constraint_violation"
	errCodeDatabase     = "database_error"
	errCodeInvalidParam = "invalid_parameter"
)

// ValidationError rejects a submission before any database call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ArtistInput is the Add Artist submission. DeathYear 0 means the artist is
// alive and is stored as NULL.
type ArtistInput struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	BirthYear int    `json:"birth_year" form:"birth_year"`
	DeathYear int    `json:"death_year" form:"death_year"`
}

func (in ArtistInput) validate(maxYear int) (model.Artist, error) {
	a := model.Artist{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		BirthYear: in.BirthYear,
	}
	if a.FirstName == "" || a.LastName == "" {
		return model.Artist{}, invalid("name", "first and last name are required")
	}
	if in.BirthYear == 0 {
		return model.Artist{}, invalid("birth_year", "birth year is required")
	}
	if err := checkYear("birth_year", in.BirthYear, maxYear); err != nil {
		return model.Artist{}, err
	}
	if in.DeathYear != 0 {
		if err := checkYear("death_year", in.DeathYear, maxYear); err != nil {
			return model.Artist{}, err
		}
		if in.DeathYear < in.BirthYear {
			return model.Artist{}, invalid("death_year", "death year %d is before birth year %d", in.DeathYear, in.BirthYear)
		}
		death := in.DeathYear
		a.DeathYear = &death
	}
	return a, nil
}

// CityInput is the Add City submission.
type CityInput struct {
	CountryISO string `json:"country_iso" form:"country_iso"`
	Zipcode    string `json:"zipcode" form:"zipcode"`
	Name       string `json:"name" form:"name"`
}

func (in CityInput) validate() (model.City, error) {
	c := model.City{
		CityKey: model.CityKey{
			CountryISO: strings.ToUpper(strings.TrimSpace(in.CountryISO)),
			Zipcode:    strings.TrimSpace(in.Zipcode),
		},
		Name: strings.TrimSpace(in.Name),
	}
	switch {
	case c.CountryISO == "":
		return model.City{}, invalid("country_iso", "country is required")
	case c.Zipcode == "":
		return model.City{}, invalid("zipcode", "zipcode is required")
	case c.Name == "":
		return model.City{}, invalid("name", "city name is required")
	}
	return c, nil
}

// PaintingInput is the Add Painting submission. City is "ISO:zipcode";
// YearCreated 0 falls back to 2000 and a blank WikipediaURL is stored as NULL.
type PaintingInput struct {
	Title        string `json:"title" form:"title"`
	Style        string `json:"style_type" form:"style_type"`
	YearCreated  int    `json:"year_created" form:"year_created"`
	WikipediaURL string `json:"wikipedia_url" form:"wikipedia_url"`
	ArtistID     int64  `json:"artist_id" form:"artist_id"`
	City         string `json:"city" form:"city"`
}

func (in PaintingInput) validate(maxYear int) (repository.NewPainting, error) {
	np := repository.NewPainting{
		Title:        strings.TrimSpace(in.Title),
		Style:        strings.TrimSpace(in.Style),
		YearCreated:  in.YearCreated,
		WikipediaURL: strings.TrimSpace(in.WikipediaURL),
		ArtistID:     in.ArtistID,
	}
	if np.Title == "" {
		return repository.NewPainting{}, invalid("title", "title is required")
	}
	if np.Style == "" {
		return repository.NewPainting{}, invalid("style_type", "style is required")
	}
	if !model.KnownStyle(np.Style) {
		return repository.NewPainting{}, invalid("style_type", "unknown style %q", np.Style)
	}
	if np.ArtistID <= 0 {
		return repository.NewPainting{}, invalid("artist_id", "artist is required")
	}
	if strings.TrimSpace(in.City) == "" {
		return repository.NewPainting{}, invalid("city", "city is required")
	}
	key, err := model.ParseCityKey(in.City)
	if err != nil {
		return repository.NewPainting{}, invalid("city", "%s", err.Error())
	}
	np.City = key
	if np.YearCreated == 0 {
		np.YearCreated = defaultYearCreated
	}
	if err := checkYear("year_created", np.YearCreated, maxYear); err != nil {
		return repository.NewPainting{}, err
	}
	if np.WikipediaURL != "" {
		u, err := url.Parse(np.WikipediaURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return repository.NewPainting{}, invalid("wikipedia_url", "reference URL must be an absolute http(s) URL")
		}
	}
	return np, nil
}

func checkYear(field string, year, maxYear int) error {
	if year < minYear || year > maxYear {
		return invalid(field, "must be between %d and %d", minYear, maxYear)
	}
	return nil
}
