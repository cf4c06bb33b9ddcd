package model

import (
	"errors"
	"strings"
)

// CityKey is the composite primary key of a city.
type CityKey struct {
	CountryISO string `json:"country_iso"`
	Zipcode    string `json:"zipcode"`
}

// String encodes the key as "ISO:zipcode", the form used by select boxes.
func (k CityKey) String() string { return k.CountryISO + ":" + k.Zipcode }

// ParseCityKey decodes "ISO:zipcode". Zipcodes may themselves contain
// colons, so only the first one separates the parts.
func ParseCityKey(s string) (CityKey, error) {
	iso, zip, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || iso == "" || zip == "" {
		return CityKey{}, errors.New("city must be given as ISO:zipcode")
	}
	return CityKey{CountryISO: strings.ToUpper(iso), Zipcode: zip}, nil
}

// City is a row of the `city` table. Every city belongs to an existing
// country; the database enforces it with a foreign key.
type City struct {
	CityKey
	Name string `json:"name"` // city.name
}

// Label is the text shown for the city in select boxes.
func (c City) Label() string { return c.Name + " (" + c.Zipcode + ")" }
