package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// globalLogger is a no-op until InitLogging or InitWithWriter runs.
var globalLogger = zerolog.Nop()

var once sync.Once

// InitLogging sends JSON log lines to stdout and, if logFilePath is set, also
// appends them to that file. Only the first call has any effect.
func InitLogging(logFilePath, level string) {
	once.Do(func() {
		out := []io.Writer{os.Stdout}
		if f, err := openLogFile(logFilePath); err != nil {
			fmt.Fprintf(os.Stderr, "log file disabled: %v\n", err)
		} else if f != nil {
			out = append(out, f)
		}
		setGlobal(zerolog.MultiLevelWriter(out...), level)
	})
}

// InitWithWriter replaces the global logger with one writing to w.
func InitWithWriter(w io.Writer, level string) {
	setGlobal(w, level)
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
}

func setGlobal(w io.Writer, level string) {
	globalLogger = zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
	log.Logger = globalLogger
}

// parseLevel falls back to info for empty or unknown names.
func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// WithLogger returns ctx carrying a logger enriched with fields. Loggers
// already on ctx are extended, so fields accumulate.
func WithLogger(ctx context.Context, fields map[string]interface{}) context.Context {
	l := getLogger(ctx).With().Fields(fields).Logger()
	return l.WithContext(ctx)
}

func getLogger(ctx context.Context) *zerolog.Logger {
	// zerolog.Ctx hands back a disabled logger when ctx has none.
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &globalLogger
}

func DebugLog(ctx context.Context, msg string, args ...interface{}) {
	getLogger(ctx).Debug().Msgf(msg, args...)
}

func InfoLog(ctx context.Context, msg string, args ...interface{}) {
	getLogger(ctx).Info().Msgf(msg, args...)
}

func WarnLog(ctx context.Context, msg string, args ...interface{}) {
	getLogger(ctx).Warn().Msgf(msg, args...)
}

// ErrorLog logs at error level. When the first arg is an error it goes to the
// "error" field and msg is logged as is; otherwise args format msg.
func ErrorLog(ctx context.Context, msg string, args ...interface{}) {
	ev := getLogger(ctx).Error()
	if len(args) > 0 {
		if err, ok := args[0].(error); ok {
			ev.Err(err).Msg(msg)
			return
		}
	}
	ev.Msgf(msg, args...)
}
