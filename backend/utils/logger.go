package utils

import (
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

const loggerModule = "studytrack"

// LoggerConfig controls InitLogger.
type LoggerConfig struct {
	// Level is one of DEBUG, INFO, NOTICE, WARNING, ERROR, CRITICAL.
	Level string
	// Format is "text" or "plain". Plain drops the timestamp for
	// collectors that add their own.
	Format string
	// Output defaults to os.Stdout.
	Output io.Writer
	// EnableColors colours the level in text output.
	EnableColors bool
}

// InitLogger builds the application logger.
func InitLogger(config ...LoggerConfig) *logging.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	var format logging.Formatter
	switch {
	case cfg.Format == "plain":
		format = logging.MustStringFormatter(`%{level:.4s} [%{module}] %{message}`)
	case cfg.EnableColors:
		format = logging.MustStringFormatter(
			`%{color}%{time:2006-01-02 15:04:05} %{level:.4s}%{color:reset} [%{module}] %{message}`,
		)
	default:
		format = logging.MustStringFormatter(
			`%{time:2006-01-02 15:04:05} %{level:.4s} [%{module}] %{message}`,
		)
	}

	backend := logging.NewLogBackend(cfg.Output, "", 0)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))
	leveled.SetLevel(parseLevel(cfg.Level), loggerModule)

	logger := logging.MustGetLogger(loggerModule)
	logger.SetBackend(leveled)
	return logger
}

func parseLevel(level string) logging.Level {
	if level == "" {
		return logging.INFO
	}
	parsed, err := logging.LogLevel(strings.ToUpper(level))
	if err != nil {
		return logging.INFO
	}
	return parsed
}
