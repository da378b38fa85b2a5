package main

import (
	"antithetic/internal/conf"

	kzap "github.com/yola1107/kratos/contrib/log/zap/v2"
	"github.com/yola1107/kratos/v2/library/log/zap"
	zconf "github.com/yola1107/kratos/v2/library/log/zap/conf"
	"github.com/yola1107/kratos/v2/log"
)

var sensitiveKeys = []string{"pwd", "password", "token"}

// newLogger logs to rotating files when a directory is configured and to
// stderr otherwise. Stdout carries only results.
func newLogger(c *conf.Log) (log.Logger, func()) {
	if c.Directory != "" {
		logger := zap.NewLogger(zconf.DefaultConfig(
			zconf.WithProduction(),
			zconf.WithAppName(Name),
			zconf.WithLevel(c.Level),
			zconf.WithDirectory(c.Directory),
			zconf.WithSensitive(sensitiveKeys),
		))
		return logger, func() { _ = logger.Close() }
	}

	logger := kzap.New(stderrLogConfig(c))
	return log.With(logger, "service.name", Name), func() { _ = logger.Close() }
}

// stderrLogConfig selects the console-only development core of the contrib logger.
func stderrLogConfig(c *conf.Log) *kzap.Config {
	cfg := kzap.DefaultConfig()
	cfg.Mode = kzap.Development
	cfg.Level = c.Level
	cfg.Directory = ""
	cfg.SensitiveKeys = sensitiveKeys
	cfg.Telegram = nil
	return cfg
}
