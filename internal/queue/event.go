// Package queue defines message payloads exchanged over the message broker.
package queue

// Event kinds published to the request.events queue.
const (
    EventRequestCreated = "request.created"
    EventRequestMatched = "request.matched"
)

// RequestEvent is published when a service request is created or matched.
// It contains enough information for downstream consumers to log, notify,
// or trigger analytics without querying the primary database.
type RequestEvent struct {
    Event      string `json:"event"`
    RequestID  uint64 `json:"request_id"`
    UserID     uint64 `json:"user_id,omitempty"`
    Title      string `json:"title,omitempty"`
    Category   string `json:"category,omitempty"`
    Budget     string `json:"budget,omitempty"`
    Location   string `json:"location,omitempty"`
    OccurredAt string `json:"occurred_at"`
}
