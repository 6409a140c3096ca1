package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

type appNameHook struct {
	appName string
}

// Levels implements logrus.Hook interface.
func (h *appNameHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook interface.
func (h *appNameHook) Fire(entry *logrus.Entry) error {
	entry.Message = "[" + h.appName + "] " + entry.Message
	return nil
}

// InitLogger configures the shared Logger from LOG_LEVEL and LOG_FORMAT
// ("text", the default, or "json"). Results go to stdout, so log lines go
// to stderr.
func InitLogger(appName string) {
	Logger.SetOutput(os.Stderr)

	logLevelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		Logger.Warnf("Invalid LOG_LEVEL '%s', defaulting to INFO", logLevelStr)
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "json":
		Logger.SetFormatter(&logrus.JSONFormatter{})
		Logger.AddHook(&appFieldHook{appName})
	default:
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		Logger.AddHook(&appNameHook{appName})
	}
}

// appFieldHook carries the app name as a field for structured output.
type appFieldHook struct {
	appName string
}

func (h *appFieldHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *appFieldHook) Fire(entry *logrus.Entry) error {
	entry.Data["app"] = h.appName
	return nil
}

// ComponentLogger tags every line with the component that wrote it.
func ComponentLogger(component string) *logrus.Entry {
	return Logger.WithField("component", component)
}
