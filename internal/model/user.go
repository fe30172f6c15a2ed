package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Each field corresponds to a column in the database.  The json
// tags are omitted here because these structs are used internally by the
// repository layer; handlers define separate response types with the JSON
// shape the mini app expects.
//
// A row is created the first time a Telegram account authenticates and the
// profile columns are refreshed on every subsequent login.  The internal ID
// never changes once assigned, and ActivityDescription is only ever touched
// by the explicit activity update endpoint — never by the login upsert.
//
// Fields:
//  ID                  – primary key identifier of the user.
//  TelegramID          – unique Telegram account identifier.
//  FirstName           – Telegram first name (refreshed on login).
//  LastName            – Telegram last name, may be empty.
//  Username            – Telegram username, may be empty.
//  PhotoURL            – avatar URL, may be empty.
//  IsPremium           – Telegram Premium flag.
//  ActivityDescription – free-text business description, owned by the user.
//  CreatedAt           – timestamp of creation.
//  UpdatedAt           – timestamp of last update.
type User struct {
    ID                  uint64    // users.id
    TelegramID          int64     // users.telegram_id
    FirstName           string    // users.first_name
    LastName            string    // users.last_name
    Username            string    // users.username
    PhotoURL            string    // users.photo_url
    IsPremium           bool      // users.is_premium
    ActivityDescription string    // users.activity_description
    CreatedAt           time.Time // users.created_at
    UpdatedAt           time.Time // users.updated_at
}
