package config // package config loads application configuration from environment variables

import (
    "log" // log is used to report configuration errors and halt execution
    "os"  // os provides access to environment variables
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations.
type Config struct {
    Env          string // application environment (e.g. "dev", "prod")
    Port         string // HTTP port to listen on
    DBUser       string // database username
    DBPass       string // database password (optional)
    DBHost       string // database host address
    DBPort       string // database port number
    DBName       string // database name
    JWTSecret    string // secret used to sign session tokens
    BotToken     string // Telegram bot token used to verify init data
    TokenTTLDays int    // session token time-to-live in days
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  BOT_TOKEN is
// deliberately optional at load time: its absence must surface as a 500 on
// the auth endpoint, not as a startup crash, so the rest of the API keeps
// serving.
func Load() Config {
    return Config{
        Env:          getenv("APP_ENV", "dev"),             // environment (dev/test/prod)
        Port:         getenv("APP_PORT", "3001"),           // port to bind the HTTP server
        DBUser:       must("DB_USER"),                      // database user
        DBPass:       os.Getenv("DB_PASS"),                 // database password (empty allowed)
        DBHost:       must("DB_HOST"),                      // database host
        DBPort:       must("DB_PORT"),                      // database port
        DBName:       must("DB_NAME"),                      // database name
        JWTSecret:    must("JWT_SECRET"),                   // secret used for signing session tokens
        BotToken:     os.Getenv("BOT_TOKEN"),               // bot token (checked per-request by the auth handler)
        TokenTTLDays: envInt("SESSION_TTL_DAYS", 30),        // session lifetime in days
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}
