package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New gin 모드에 맞는 zap 로거 생성 (release: JSON, 그 외: 개발용 컬러 출력)
func New(mode string) (*zap.Logger, error) {
	var config zap.Config

	if mode == "release" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return config.Build()
}
