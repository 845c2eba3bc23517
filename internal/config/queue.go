package config

import (
	"errors"
	"time"
)

const defaultQueuePublishTimeout = 5 * time.Second

type QueueConfig struct {
	QueueUser      string        `mapstructure:"queue-user"`
	QueuePassword  string        `mapstructure:"queue-password"`
	Url            string        `mapstructure:"url"`
	ExchangeName   string        `mapstructure:"exchange-name"`
	PublishTimeout time.Duration `mapstructure:"publish-timeout"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.QueueUser == "" {
		return errors.New("missing queue user")
	}
	if cfg.QueuePassword == "" {
		return errors.New("missing queue password")
	}
	if cfg.Url == "" {
		return errors.New("missing queue url")
	}
	if cfg.ExchangeName == "" {
		return errors.New("missing queue exchange name")
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = defaultQueuePublishTimeout
	}

	return nil
}
