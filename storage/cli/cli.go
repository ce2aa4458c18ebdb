package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Trinoooo/dastcom/consts"
	"github.com/Trinoooo/dastcom/errs"
	"github.com/Trinoooo/dastcom/storage/dastcom5"
	"github.com/Trinoooo/dastcom/storage/dastcom5/schema"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	flagDir = &cli.StringFlag{
		Name:    "dir",
		Aliases: []string{"d"},
		Usage:   "directory holding dast5_le.dat, dcom5_le.dat and dastcom.idx.",
		EnvVars: []string{consts.Dir},
	}
	flagHeaderCacheSize = &cli.IntFlag{
		Name:  "header-cache-size",
		Usage: "number of parsed file headers kept in memory, 0 disables the cache.",
		Action: func(ctx *cli.Context, size int) error {
			if size < 0 {
				e := errs.NewInvalidParamErr()
				cliLogger.Error(e.Error(), zap.String(consts.LogFieldParams, "size"), zap.Int(consts.LogFieldValue, size))
				return e
			}
			return nil
		},
		EnvVars: []string{consts.HeaderCacheSize},
	}
	flagPushGateway = &cli.StringFlag{
		Name:    "push-gateway",
		Usage:   "prometheus pushgateway url, metrics are pushed once per run when set.",
		EnvVars: []string{consts.PushGateway},
	}
	flagConfig = &cli.StringFlag{
		Name:  "config",
		Value: consts.DefaultConfigPath,
		Usage: "directory of config.yaml.",
	}

	flagKind = &cli.StringFlag{
		Name:  "kind",
		Value: "merged",
		Usage: "records to dump: asteroid, comet or merged.",
		Action: func(ctx *cli.Context, kind string) error {
			switch kind {
			case "asteroid", "comet", "merged":
				return nil
			}
			e := errs.NewInvalidParamErr().WithMsg("unknown kind %q", kind)
			cliLogger.Error(e.Error(), zap.String(consts.LogFieldParams, "kind"), zap.String(consts.LogFieldValue, kind))
			return e
		},
	}
	flagLimit = &cli.IntFlag{
		Name:  "limit",
		Usage: "stop after this many records, 0 dumps everything.",
	}
	flagUnits = &cli.BoolFlag{
		Name:  "units",
		Usage: "append units to column names.",
	}
	flagEpochTime = &cli.BoolFlag{
		Name:  "epoch-time",
		Usage: "print Julian date columns as calendar time.",
	}
	flagExact = &cli.BoolFlag{
		Name:  "exact",
		Usage: "fail unless the name matches exactly one body.",
	}
	flagUpdate = &cli.BoolFlag{
		Name:  "update",
		Usage: "replace an already unpacked archive.",
	}
	flagBaseDir = &cli.StringFlag{
		Name:  "base-dir",
		Value: consts.BaseDir,
		Usage: "directory the archive is unpacked into.",
	}
)

var errLimitReached = errors.New("limit reached")

type Wrapper struct {
	app     *cli.App
	config  *viper.Viper
	metrics *dastcom5.MetricsHelper
	store   *dastcom5.Store
}

func NewWrapper() *Wrapper {
	wrapper := &Wrapper{
		app: &cli.App{
			Name:    "dastcom",
			Usage:   "read-only access to the JPL DASTCOM5 small-body database",
			Version: "0.1.0",
		},
		metrics: dastcom5.NewMetricsHelper(),
	}
	wrapper.modifyDefaultHelp()
	wrapper.withFlags()
	wrapper.withHooks()
	wrapper.withCommands()
	wrapper.withAuthor()
	return wrapper
}

func (wrapper *Wrapper) Run(args []string) error {
	return wrapper.app.Run(args)
}

// SetOutput redirects command output, stdout by default.
func (wrapper *Wrapper) SetOutput(w io.Writer) {
	wrapper.app.Writer = w
}

// Commands lists the command names, for completion.
func (wrapper *Wrapper) Commands() []string {
	var names []string
	for _, cmd := range wrapper.app.Commands {
		names = append(names, cmd.Name)
	}
	return names
}

func (wrapper *Wrapper) modifyDefaultHelp() {
	cli.HelpFlag = &cli.BoolFlag{
		Name: "help",
	}
	cli.AppHelpTemplate = consts.HelpTemplate
}

func (wrapper *Wrapper) withFlags() {
	wrapper.app.Flags = []cli.Flag{
		flagDir,
		flagHeaderCacheSize,
		flagPushGateway,
		flagConfig,
	}
}

// withHooks loads the config before any command and pushes metrics after.
// Flags take precedence over config file and environment values.
func (wrapper *Wrapper) withHooks() {
	wrapper.app.Before = func(ctx *cli.Context) error {
		config, err := LoadConfig(ctx.String(flagConfig.Name))
		if err != nil {
			return err
		}
		if ctx.IsSet(flagDir.Name) {
			config.Set(keyDir, ctx.String(flagDir.Name))
		}
		if ctx.IsSet(flagHeaderCacheSize.Name) {
			config.Set(keyHeaderCacheSize, ctx.Int(flagHeaderCacheSize.Name))
		}
		if ctx.IsSet(flagPushGateway.Name) {
			config.Set(keyPushGateway, ctx.String(flagPushGateway.Name))
		}
		wrapper.config = config
		return nil
	}
	wrapper.app.After = func(ctx *cli.Context) error {
		if wrapper.config == nil {
			return nil
		}
		url := wrapper.config.GetString(keyPushGateway)
		if url == "" {
			return nil
		}
		if err := wrapper.metrics.Push(url); err != nil {
			cliLogger.Warn(err.Error(), zap.String(consts.LogFieldParams, keyPushGateway), zap.String(consts.LogFieldValue, url))
		}
		return nil
	}
}

func (wrapper *Wrapper) withCommands() {
	wrapper.app.Commands = []*cli.Command{
		{
			Name:   "header",
			Usage:  "print the asteroid and comet file headers",
			Action: chain(wrapper.header, LogMw, ParamsValidateMw(0, 0)),
		},
		{
			Name:      "record",
			Usage:     "print every field of one record",
			ArgsUsage: "<record number>",
			Flags:     []cli.Flag{flagUnits},
			Action:    chain(wrapper.record, LogMw, ParamsValidateMw(1, 1)),
		},
		{
			Name:      "search",
			Usage:     "print index lines naming a body",
			ArgsUsage: "<name>",
			Action:    chain(wrapper.search, LogMw, ParamsValidateMw(1, -1)),
		},
		{
			Name:      "orbit",
			Usage:     "print the orbits of the bodies a name matches as CSV",
			ArgsUsage: "<name>",
			Flags:     []cli.Flag{flagExact},
			Action:    chain(wrapper.orbit, LogMw, ParamsValidateMw(1, -1)),
		},
		{
			Name:   "dump",
			Usage:  "print whole files as CSV",
			Flags:  []cli.Flag{flagKind, flagLimit, flagUnits, flagEpochTime},
			Action: chain(wrapper.dump, LogMw, ParamsValidateMw(0, 0)),
		},
		{
			Name:      "unpack",
			Usage:     "extract a downloaded dastcom5.zip",
			ArgsUsage: "<zip path>",
			Flags:     []cli.Flag{flagUpdate, flagBaseDir},
			Action:    chain(wrapper.unpack, LogMw, ParamsValidateMw(1, 1)),
		},
	}
}

func (wrapper *Wrapper) withAuthor() {
	wrapper.app.Authors = []*cli.Author{
		{
			Name:  "Trino",
			Email: "sujun.trinoooo@gmail.com",
		},
	}
}

// openStore reuses the store of a previous run while the directory and
// cache size stay the same.
func (wrapper *Wrapper) openStore() (*dastcom5.Store, error) {
	dir := wrapper.config.GetString(keyDir)
	cacheSize := wrapper.config.GetInt(keyHeaderCacheSize)
	if wrapper.store != nil && wrapper.store.Dir() == dir && wrapper.store.HeaderCacheSize() == cacheSize {
		return wrapper.store, nil
	}
	opts := dastcom5.NewOptions().
		SetHeaderCacheSize(cacheSize).
		SetMetrics(wrapper.metrics)
	store, err := dastcom5.Open(dir, opts)
	if err != nil {
		return nil, err
	}
	wrapper.store = store
	return store, nil
}

func (wrapper *Wrapper) header(ctx *cli.Context) error {
	store, err := wrapper.openStore()
	if err != nil {
		return err
	}
	ast, com, err := store.Headers()
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	for _, h := range []*dastcom5.Header{ast, com} {
		fmt.Fprintf(w, "%s file\n", h.Kind)
		fmt.Fprintf(w, "  date      %s (JD %.1f)\n", h.CalDate, h.JDDate)
		fmt.Fprintf(w, "  type      %s, byte order %d\n", h.FileType, h.ByteOrder)
		fmt.Fprintf(w, "  begin     %v\n", h.BeginP)
		fmt.Fprintf(w, "  end       %v\n", h.EndPt)
		if h.Kind == dastcom5.Asteroid {
			fmt.Fprintf(w, "  IBIAS0    %d\n  IBIAS1    %d\n", h.Bias0, h.Bias)
		} else {
			fmt.Fprintf(w, "  IBIAS2    %d\n", h.Bias)
		}
	}
	return nil
}

func (wrapper *Wrapper) record(ctx *cli.Context) error {
	r, err := strconv.ParseInt(ctx.Args().First(), 10, 64)
	if err != nil {
		e := errs.NewParseIntErr().WithErr(err)
		cliLogger.Error(e.Error(), zap.String(consts.LogFieldParams, consts.LogFieldRecord), zap.String(consts.LogFieldValue, ctx.Args().First()))
		return e
	}
	store, err := wrapper.openStore()
	if err != nil {
		return err
	}
	rec, err := store.ReadRecord(r)
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	for i, f := range rec.Schema().Fields() {
		unit := ""
		if ctx.Bool(flagUnits.Name) && dastcom5.Unit(f.Name) != "" {
			unit = " " + dastcom5.Unit(f.Name)
		}
		fmt.Fprintf(w, "%-12s %v%s\n", f.Name, rec.ValueAt(i), unit)
	}
	return nil
}

func (wrapper *Wrapper) search(ctx *cli.Context) error {
	store, err := wrapper.openStore()
	if err != nil {
		return err
	}
	lines, err := store.LinesFromName(strings.Join(ctx.Args().Slice(), " "))
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(ctx.App.Writer, line)
	}
	return nil
}

func (wrapper *Wrapper) orbit(ctx *cli.Context) error {
	store, err := wrapper.openStore()
	if err != nil {
		return err
	}
	name := strings.Join(ctx.Args().Slice(), " ")
	var orbits []*dastcom5.Orbit
	if ctx.Bool(flagExact.Name) {
		o, err := store.OrbitFromName(name)
		if err != nil {
			return err
		}
		orbits = append(orbits, o)
	} else if orbits, err = store.OrbitsFromName(name); err != nil {
		return err
	}
	return dastcom5.OrbitTable(orbits).WriteCSV(ctx.App.Writer)
}

func (wrapper *Wrapper) dump(ctx *cli.Context) error {
	store, err := wrapper.openStore()
	if err != nil {
		return err
	}

	limit := ctx.Int(flagLimit.Name)
	var records []*schema.Record
	collect := func(project func(*schema.Record) (*schema.Record, error)) func(*schema.Record) error {
		return func(rec *schema.Record) error {
			if limit > 0 && len(records) >= limit {
				return errLimitReached
			}
			out, err := project(rec)
			if err != nil {
				return err
			}
			records = append(records, out)
			return nil
		}
	}
	same := func(rec *schema.Record) (*schema.Record, error) { return rec, nil }

	var kinds []dastcom5.BodyKind
	project := same
	switch ctx.String(flagKind.Name) {
	case "asteroid":
		kinds = []dastcom5.BodyKind{dastcom5.Asteroid}
	case "comet":
		kinds = []dastcom5.BodyKind{dastcom5.Comet}
	default:
		kinds = []dastcom5.BodyKind{dastcom5.Asteroid, dastcom5.Comet}
		project = dastcom5.EntireMerger.Project
	}
	for _, kind := range kinds {
		err := store.Scan(kind, collect(project))
		if errors.Is(err, errLimitReached) {
			break
		}
		if err != nil {
			return err
		}
	}

	tbl, err := dastcom5.RecordsTable(records, dastcom5.TableOptions{
		WithUnits:   ctx.Bool(flagUnits.Name),
		EpochAsTime: ctx.Bool(flagEpochTime.Name),
	})
	if err != nil {
		return err
	}
	return tbl.WriteCSV(ctx.App.Writer)
}

func (wrapper *Wrapper) unpack(ctx *cli.Context) error {
	baseDir := ctx.String(flagBaseDir.Name)
	if err := dastcom5.Unpack(baseDir, ctx.Args().First(), ctx.Bool(flagUpdate.Name)); err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "unpacked into %s\n", dastcom5.DatabaseDir(baseDir))
	return nil
}
