package logs

import (
	"github.com/Trinoooo/dastcom/consts"
	"github.com/Trinoooo/dastcom/storage/logs"
	"go.uber.org/zap"
)

var commonFields = []zap.Field{
	zap.String(consts.Component, consts.Dastcom5),
}

var dastcomLogger *zap.Logger

func init() {
	dastcomLogger = logs.Logger.With(commonFields...)
}

func Debug(msg string, fields ...zap.Field) {
	dastcomLogger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	dastcomLogger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	dastcomLogger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	dastcomLogger.Error(msg, fields...)
}
