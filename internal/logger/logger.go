package logger

import (
	"go.uber.org/zap"
)

var l *zap.Logger

// Init builds the global logger. Development mode gets the console
// encoder and debug level, production gets JSON.
func Init(isDev bool) error {
	var (
		lg  *zap.Logger
		err error
	)
	if isDev {
		lg, err = zap.NewDevelopment()
	} else {
		lg, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	l = lg
	return nil
}

func L() *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

func Sync() {
	if l != nil {
		_ = l.Sync()
	}
}
