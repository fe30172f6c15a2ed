package utils // package utils provides helpers for session token creation

import (
    "time" // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionToken represents a signed JWT session credential along with its
// expiry.  The Token field contains the JWT string.  Exp stores the
// expiration timestamp as a time.Time.  Session tokens are long lived and
// sent in the Authorization header when calling protected endpoints; the
// server keeps no record of them, so invalidation happens only by expiry.
type SessionToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT binding a client to an
// application user.  It takes the signing secret, the internal user ID, the
// Telegram account ID, the current username and a TTL in days.  The claims
// embed everything the session guard needs so that protected handlers never
// have to touch the database just to identify the caller: user_id,
// telegram_id, username, plus the standard exp and iat timestamps.
func NewSessionToken(secret string, userID uint64, telegramID int64, username string, ttlDays int) (SessionToken, error) {
    now := time.Now().UTC()
    exp := now.Add(time.Duration(ttlDays) * 24 * time.Hour)
    claims := jwt.MapClaims{
        "user_id":     userID,
        "telegram_id": telegramID,
        "username":    username,
        "exp":         exp.Unix(),
        "iat":         now.Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp}, nil
}
