package log

import (
	"go.uber.org/zap"
)

var global = zap.NewNop()

// Init builds the process logger (JSON in prod, console in dev), installs it
// globally and returns it.
func Init(prod bool) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if prod {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	global = l
	zap.ReplaceGlobals(l)
	return l, nil
}

// L returns the process logger. Safe before Init (returns a nop).
func L() *zap.Logger { return global }

func Sync() { _ = global.Sync() }
