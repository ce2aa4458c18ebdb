package cli

import (
	"fmt"

	"github.com/Trinoooo/dastcom/consts"
	"github.com/Trinoooo/dastcom/errs"
	"github.com/luci/go-render/render"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

type MiddlewareFunc func(action cli.ActionFunc) cli.ActionFunc

// chain wraps action so that mws[0] runs first.
func chain(action cli.ActionFunc, mws ...MiddlewareFunc) cli.ActionFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		action = mws[i](action)
	}
	return action
}

func LogMw(action cli.ActionFunc) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		flags := map[string]any{}
		for _, name := range ctx.FlagNames() {
			flags[name] = ctx.Value(name)
		}
		cliLogger.Info(fmt.Sprintf("cmd: %s, args: %s, flags: %s",
			ctx.Command.Name, render.Render(ctx.Args().Slice()), render.Render(flags)))
		err := action(ctx)
		cliLogger.Info(fmt.Sprintf("cmd: %s done, errs: %v", ctx.Command.Name, err))
		return err
	}
}

// ParamsValidateMw rejects calls with fewer than min or more than max
// positional arguments. A negative max means no upper bound.
func ParamsValidateMw(min, max int) MiddlewareFunc {
	return func(action cli.ActionFunc) cli.ActionFunc {
		return func(ctx *cli.Context) error {
			n := ctx.NArg()
			if n < min || (max >= 0 && n > max) {
				e := errs.NewInvalidParamErr().WithMsg("%s takes %s arguments, got %d", ctx.Command.Name, arity(min, max), n)
				cliLogger.Error(e.Error(), zap.String(consts.LogFieldParams, "args"), zap.Int(consts.LogFieldValue, n))
				return e
			}
			return action(ctx)
		}
	}
}

func arity(min, max int) string {
	switch {
	case max < 0:
		return fmt.Sprintf("at least %d", min)
	case min == max:
		return fmt.Sprintf("%d", min)
	}
	return fmt.Sprintf("%d to %d", min, max)
}
