package model

// Artist is a row of the `artist` table. DeathYear is nil for a living
// artist.
type Artist struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthYear int    `json:"birth_year"`
	DeathYear *int   `json:"death_year"`
}

// FullName joins first and last name the way reports and search filters do.
func (a Artist) FullName() string { return a.FirstName + " " + a.LastName }
