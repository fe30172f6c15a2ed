package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// SessionAuth returns an Echo middleware that validates a Bearer session
// token and injects the token's claims into the request context.  The
// provided secret must match the one used when issuing tokens.  This
// middleware wraps every protected route so that handlers can identify the
// caller via c.Get("user_id"), c.Get("telegram_id") and c.Get("username").
//
// Two failure modes are kept distinct on purpose, mirroring the client
// contract: a request that never presented a token gets 401 ("Access token
// required"), while a request whose token fails verification — bad
// signature, wrong algorithm, or past its expiry — gets 403 ("Invalid
// token").  The guard is stateless: nothing is remembered between calls and
// no refresh is attempted here; an expired client simply re-authenticates
// with fresh init data.
func SessionAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // Read the Authorization header.  A valid header starts with
            // "Bearer " followed by the JWT.  Anything else means the
            // client never supplied a credential.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Access token required"})
            }
            raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
            if raw == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Access token required"})
            }

            // Parse the token using the HS256 signing method and our
            // secret.  The callback supplies the signing key and rejects
            // tokens signed with any other algorithm.  Expiry is enforced
            // by the parser itself.
            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "Invalid token"})
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "Invalid token"})
            }

            // Numeric claims round-trip through JSON as float64; convert
            // them back to the widths handlers expect before storing.
            uid, ok := claims["user_id"].(float64)
            if !ok || uid <= 0 {
                return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "Invalid token"})
            }
            c.Set("user_id", uint64(uid))
            if tid, ok := claims["telegram_id"].(float64); ok {
                c.Set("telegram_id", int64(tid))
            }
            if name, ok := claims["username"].(string); ok {
                c.Set("username", name)
            }
            return next(c)
        }
    }
}
