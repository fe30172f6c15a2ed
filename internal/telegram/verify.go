// Package telegram validates Telegram WebApp init data.  Mini apps receive an
// opaque query string from the Telegram client which carries the user profile
// and an HMAC signature.  The backend must confirm that signature before
// trusting anything inside the payload.
package telegram

import (
    "crypto/hmac"
    "crypto/sha256"
    "encoding/hex"
    "encoding/json"
    "errors"
    "net/url"
    "sort"
    "strings"
)

// User mirrors the profile object embedded in the "user" field of init data.
// Only id and first_name are guaranteed by the platform; the remaining
// fields are optional and may be absent for any given account.
type User struct {
    ID        int64  `json:"id"`
    FirstName string `json:"first_name"`
    LastName  string `json:"last_name,omitempty"`
    Username  string `json:"username,omitempty"`
    PhotoURL  string `json:"photo_url,omitempty"`
    IsPremium bool   `json:"is_premium,omitempty"`
}

// ErrNoUser is returned by ExtractUser when init data carries no user field.
var ErrNoUser = errors.New("init data contains no user field")

// VerifyInitData reports whether initData carries a valid Telegram WebApp
// signature for the given bot token.  The check follows the scheme published
// by Telegram: remove the hash field, sort the remaining key=value pairs
// bytewise, join them with newlines, then HMAC-SHA256 the result with a key
// derived by HMAC-SHA256("WebAppData", botToken).  Malformed input is never
// an error here; it is simply an inauthentic payload.
func VerifyInitData(initData, botToken string) bool {
    values, err := url.ParseQuery(initData)
    if err != nil {
        return false
    }
    supplied := values.Get("hash")
    if supplied == "" {
        return false
    }
    values.Del("hash")

    // Rebuild the data-check-string: keys sorted in byte order, not locale
    // order, joined as key=value lines.
    keys := make([]string, 0, len(values))
    for k := range values {
        keys = append(keys, k)
    }
    sort.Strings(keys)
    pairs := make([]string, 0, len(keys))
    for _, k := range keys {
        pairs = append(pairs, k+"="+values.Get(k))
    }
    checkString := strings.Join(pairs, "\n")

    // First stage keys the literal "WebAppData" with the bot token; the
    // second stage signs the canonical string with that derived key.
    stage := hmac.New(sha256.New, []byte("WebAppData"))
    stage.Write([]byte(botToken))

    mac := hmac.New(sha256.New, stage.Sum(nil))
    mac.Write([]byte(checkString))
    expected := hex.EncodeToString(mac.Sum(nil))

    // hmac.Equal keeps the comparison constant time even though both sides
    // are fixed-length hex digests.
    return hmac.Equal([]byte(expected), []byte(supplied))
}

// ExtractUser pulls the embedded user profile out of init data.  Callers must
// only invoke this after VerifyInitData has accepted the payload; extraction
// performs no authenticity checks of its own.
func ExtractUser(initData string) (*User, error) {
    values, err := url.ParseQuery(initData)
    if err != nil {
        return nil, err
    }
    raw := values.Get("user")
    if raw == "" {
        return nil, ErrNoUser
    }
    var u User
    if err := json.Unmarshal([]byte(raw), &u); err != nil {
        return nil, err
    }
    if u.ID == 0 {
        return nil, errors.New("user field has no id")
    }
    return &u, nil
}
