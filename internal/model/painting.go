package model

import "slices"

// Painting is a row of the `painting` table.
//
// Fields:
//  SerialNumber – generated primary key.
//  Title        – painting title.
//  Style        – style tag (free-form in stored data; picked from Styles
//                 when added through the forms).
//  YearCreated  – year the work was finished.
//  WikipediaURL – optional outbound reference.
type Painting struct {
	SerialNumber int64   `json:"serial_number"` // painting.serial_number
	Title        string  `json:"title"`         // painting.title
	Style        string  `json:"style_type"`    // painting.style_type
	YearCreated  int     `json:"year_created"`  // painting.year_created
	WikipediaURL *string `json:"wikipedia_url"` // painting.wikipedia_url
}

// Painted links a painting to its artist.
type Painted struct {
	ArtistID             int64 `json:"artist_id"`
	PaintingSerialNumber int64 `json:"painting_serial_number"`
}

// Visitable links a painting to the city where it can be seen.
type Visitable struct {
	City                 CityKey `json:"city"`
	PaintingSerialNumber int64   `json:"painting_serial_number"`
}

// Styles lists the style tags offered by the Add Painting form.
var Styles = []string{
	"Renaissance",
	"Baroque",
	"Rococo",
	"Neoclassicism",
	"Romanticism",
	"Realism",
	"Impressionism",
	"Post-Impressionism",
	"Expressionism",
	"Cubism",
	"Futurism",
	"Surrealism",
	"Abstract Expressionism",
	"Pop Art",
	"Minimalism",
	"Contemporary",
}

// KnownStyle reports whether s is one of Styles.
func KnownStyle(s string) bool { return slices.Contains(Styles, s) }
