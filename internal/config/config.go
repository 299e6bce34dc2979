package config // package config loads application configuration from environment variables

import (
    "log" // log reports configuration errors before the real logger exists
    "os"  // os provides access to environment variables

    "github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Required variables abort startup when missing;
// optional ones carry defaults suited to a single-box deployment where the
// desk terminals, MySQL and the printer spool share one machine.
type Config struct {
    Env             string // application environment (e.g. "dev", "prod")
    Port            string // HTTP port to listen on
    LogLevel        string // zerolog level name (default "info")
    DBUser          string // database username
    DBPass          string // database password (optional)
    DBHost          string // database host address
    DBPort          string // database port number
    DBName          string // database name
    JWTSecret       string // secret used to sign session tokens
    SessionTTLMin   int    // terminal session lifetime in minutes
    SelectionTTLSec int    // seat selection hold lifetime in seconds
    AdminKeyHash    string // bcrypt hash of the admin key (empty disables admin sessions)
    AMQPURL         string // RabbitMQ URL for the ticket spool (empty disables it)
    TicketQueue     string // queue name for issued-ticket events
    SpoolDir        string // directory the print consumer writes tickets into
}

// Load reads configuration from the environment, first folding in a .env
// file when one is present.  Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
func Load() Config {
    if err := godotenv.Load(); err != nil {
        log.Printf("config: no .env file loaded: %v", err)
    }
    return Config{
        Env:             must("APP_ENV"),                    // environment (dev/test/prod)
        Port:            must("APP_PORT"),                   // port to bind the HTTP server
        LogLevel:        getenv("LOG_LEVEL", "info"),        // logging verbosity
        DBUser:          must("DB_USER"),                    // database user
        DBPass:          os.Getenv("DB_PASS"),               // database password (empty allowed)
        DBHost:          must("DB_HOST"),                    // database host
        DBPort:          must("DB_PORT"),                    // database port
        DBName:          must("DB_NAME"),                    // database name
        JWTSecret:       must("JWT_SECRET"),                 // secret for signing session tokens
        SessionTTLMin:   envInt("SESSION_TTL_MIN", 720),     // sessions last a working day
        SelectionTTLSec: envInt("SELECTION_TTL_SEC", 300),   // seat holds lapse after 5 minutes
        AdminKeyHash:    os.Getenv("ADMIN_KEY_HASH"),        // bcrypt hash of the admin key
        AMQPURL:         os.Getenv("AMQP_URL"),              // broker URL, empty disables spooling
        TicketQueue:     getenv("TICKET_QUEUE", "ticket.issued"),
        SpoolDir:        getenv("SPOOL_DIR", "spool"),
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
