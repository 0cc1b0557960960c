// Package logging holds the process-wide logger for the asset packer.
package logging

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	once      sync.Once
	singleton *log.Logger
)

func get() *log.Logger {
	once.Do(func() {
		singleton = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
			Prefix:          "gltfpack",
		})
		singleton.SetLevel(log.InfoLevel)
	})
	return singleton
}

// SetVerbose lowers the log level to debug.
func SetVerbose(v bool) {
	if v {
		get().SetLevel(log.DebugLevel)
	} else {
		get().SetLevel(log.InfoLevel)
	}
}

func Debug(msg string, args ...interface{}) {
	get().Debugf(msg, args...)
}

func Info(msg string, args ...interface{}) {
	get().Infof(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	get().Warnf(msg, args...)
}

func Error(msg string, args ...interface{}) {
	get().Errorf(msg, args...)
}
