package logs

import (
	"github.com/Trinoooo/dastcom/utils"
	"go.uber.org/zap"
)

var Logger *zap.Logger

func init() {
	var err error
	option := zap.AddCaller()
	if utils.IsTest() {
		Logger, err = zap.NewDevelopment(option)
	} else {
		Logger, err = zap.NewProduction(option)
	}

	if err != nil {
		panic(err)
	}
}

// Sync flushes buffered entries; errors from syncing a terminal are ignored.
func Sync() {
	_ = Logger.Sync()
}
