package bootstrap

import (
	"errors"
	"time"

	"github.com/Umeshh27/Event-Driven-Analytics/internal/config"
	"github.com/sirupsen/logrus"
)

func buildLogger(cfg config.Config) (*logrus.Logger, error) {
	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)
	switch cfg.Log.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	case "console", "":
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
		})
	default:
		return nil, errors.New("log format error: supported values are console or json")
	}
	return log, nil
}
