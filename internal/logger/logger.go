// Package logger configures the process-wide zerolog logger. Every
// other package logs through the zerolog/log global.
package logger

import (
    "os"
    "time"

    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"
)

// Init routes the global logger through a console writer and applies
// the configured level. An empty level means info; an unparseable
// one is warned about and also falls back to info, so a bad
// LOG_LEVEL never stops the server.
func Init(level string) {
    zerolog.TimeFieldFormat = time.RFC3339
    log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

    lv := zerolog.InfoLevel
    if level != "" {
        parsed, err := zerolog.ParseLevel(level)
        if err != nil || parsed == zerolog.NoLevel {
            log.Warn().Str("value", level).Msg("unknown log level, using info")
        } else {
            lv = parsed
        }
    }
    zerolog.SetGlobalLevel(lv)
}
