package app

import (
	"os"

	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/siekermantechnology/SnapOSLocationTools/internal/config"
)

// ConfigureLogging sets up colored console output plus an optional rotating
// log file when LOG_FILE_PATH is configured.
func ConfigureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	log.SetFormatter(&log.TextFormatter{ForceColors: true, FullTimestamp: false})
	log.SetOutput(os.Stdout)

	if cfg.LogFilePath != "" {
		fileFmt := &log.TextFormatter{DisableColors: true, FullTimestamp: true}
		writer := &lumberjack.Logger{
			Filename:   cfg.LogFilePath,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		log.AddHook(lfshook.NewHook(writer, fileFmt))
	}
}
