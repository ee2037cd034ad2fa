package log

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelError Level = "ERROR"
)

var (
	logger     zerolog.Logger
	loggerOnce sync.Once
)

// initLogger initializes the global zerolog logger. When APP_ENV=dev a
// human-readable console writer is used; otherwise plain JSON on stderr.
func initLogger() {
	loggerOnce.Do(func() {
		if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
			writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
			logger = zerolog.New(writer).With().Timestamp().Logger()
		} else {
			logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		}
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})
}

func SetLevel(l Level) {
	initLogger()
	switch l {
	case LevelDebug:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case LevelInfo:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case LevelError:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}
}

func Debug(msg string, kv ...any) {
	initLogger()
	appendKVs(logger.Debug(), kv).Msg(msg)
}

func Info(msg string, kv ...any) {
	initLogger()
	appendKVs(logger.Info(), kv).Msg(msg)
}

func Error(msg string, err error, kv ...any) {
	initLogger()
	appendKVs(logger.Error().Err(err), kv).Msg(msg)
}

// appendKVs attaches key-value pairs to an event. Keys must be strings;
// a trailing unpaired value is ignored.
func appendKVs(ev *zerolog.Event, kv []any) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, kv[i+1])
	}
	return ev
}
