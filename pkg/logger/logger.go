package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Log struct {
	LogLevel zapcore.Level `yaml:"level" envconfig:"LOG_LEVEL"`
	Sink     string        `yaml:"sink" envconfig:"LOG_SINK"`
}

func NewLogger(cfg Log, name string) *zap.Logger {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if cfg.Sink != "" {
		zcfg.OutputPaths = []string{cfg.Sink}
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	log, err := zcfg.Build()
	if err != nil {
		panic("logger build: " + err.Error())
	}
	return log.Named(name)
}
