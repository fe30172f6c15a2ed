package model

import "time"

// Request is a customer service request posted by a user.  Requests are
// visible to every authenticated user and can be marked as matched once a
// provider picks them up.
type Request struct {
    ID          uint64    // requests.id
    UserID      uint64    // requests.user_id
    Title       string    // requests.title
    Description string    // requests.description
    Category    string    // requests.category
    Budget      string    // requests.budget
    Location    string    // requests.location
    ContactInfo string    // requests.contact_info
    IsMatched   bool      // requests.is_matched
    CreatedAt   time.Time // requests.created_at
}
