// Package repository holds the catalog queries. Every repository works on a
// database.Querier, so the same code runs on a request session or inside a
// transaction.
package repository

import "github.com/iliyamo/painting-catalog/internal/database"

// ErrForeignKey is returned when an insert references a row that does not
// exist (an unknown country, artist or city). Handlers translate it into a
// 409 response carrying the driver message.
var ErrForeignKey = database.ErrForeignKey

// ErrDuplicate is returned when an insert collides with an existing key,
// for example a city whose country and zipcode are already taken.
var ErrDuplicate = database.ErrDuplicate
