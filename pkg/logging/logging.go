/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLevel = zapcore.InfoLevel

var (
	mutex   sync.Mutex
	level   = zap.NewAtomicLevelAt(defaultLevel)
	root    *zap.Logger
	loggers = make(map[string]*zap.SugaredLogger)
)

// MustGetLogger returns the logger for the given module. Loggers are cached per module
// and share a single level which may be changed at runtime with SetLevel.
func MustGetLogger(module string) *zap.SugaredLogger {
	mutex.Lock()
	defer mutex.Unlock()

	if l, ok := loggers[module]; ok {
		return l
	}

	l := rootLogger().Named(module).Sugar()
	loggers[module] = l

	return l
}

// SetLevel sets the level of all loggers. Valid values are the zap level names
// (debug, info, warn, error, dpanic, panic, fatal), case-insensitive.
func SetLevel(lvl string) error {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(lvl)))); err != nil {
		return errors.WithMessagef(err, "invalid log level [%s]", lvl)
	}

	level.SetLevel(l)

	return nil
}

// GetLevel returns the current log level
func GetLevel() string {
	return level.Level().String()
}

// IsEnabledFor returns true if the given level is enabled
func IsEnabledFor(l zapcore.Level) bool {
	return level.Enabled(l)
}

func rootLogger() *zap.Logger {
	if root != nil {
		return root
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	cfg := zap.Config{
		Level:            level,
		Encoding:         "console",
		EncoderConfig:    encCfg,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	l, err := cfg.Build()
	if err != nil {
		// The configuration above is static so this should never happen
		panic(errors.WithMessage(err, "unable to build logger"))
	}

	root = l

	return root
}
