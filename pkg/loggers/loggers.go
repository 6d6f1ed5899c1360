package loggers

import (
	"github.com/sirupsen/logrus"
)

const (
	App      = "app"
	Token    = "token"
	Executor = "executor"
	Storage  = "storage"
)

var w = &LoggerWrapper{
	loggers: map[string]*logrus.Entry{
		App:      newWithModule(App),
		Token:    newWithModule(Token),
		Executor: newWithModule(Executor),
		Storage:  newWithModule(Storage),
	},
}

type LoggerWrapper struct {
	loggers map[string]*logrus.Entry
}

func newWithModule(name string) *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger.WithField("module", name)
}

// Initialize sets per-module levels from the config. Called once at startup;
// before that every module logs at logrus's default level.
func Initialize(levels map[string]string) error {
	m := make(map[string]*logrus.Entry, len(w.loggers))
	for name := range w.loggers {
		entry := newWithModule(name)
		level := levels[name]
		if level == "" {
			level = "info"
		}
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			return err
		}
		entry.Logger.SetLevel(parsed)
		m[name] = entry
	}
	w = &LoggerWrapper{loggers: m}
	return nil
}

func Logger(name string) logrus.FieldLogger {
	return w.loggers[name]
}
