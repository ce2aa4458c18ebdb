package cli

import (
	"github.com/Trinoooo/dastcom/consts"
	"github.com/Trinoooo/dastcom/storage/logs"
	"go.uber.org/zap"
)

var cliLogger = logs.Logger.With(zap.String(consts.Component, consts.Cli))
