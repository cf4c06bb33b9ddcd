// Package queue defines the audit messages exchanged over RabbitMQ and the
// consumer that records them.
package queue

// RecordCreatedQueue is the durable queue audit events are published to.
const RecordCreatedQueue = "catalog.record_created"

// Record kinds carried by RecordCreatedEvent.Kind.
const (
	KindArtist   = "artist"
	KindCity     = "city"
	KindPainting = "painting"
)

// RecordCreatedEvent is published after an artist, city or painting has
// been committed.
type RecordCreatedEvent struct {
	Kind      string `json:"kind"`
	Key       string `json:"key"` // artist id, "ISO:zipcode" or painting serial number
	Summary   string `json:"summary"`
	CreatedAt string `json:"created_at"` // RFC 3339, UTC
}
