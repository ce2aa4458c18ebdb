package consts

const (
	B = 1 << (iota * 10)
	KB
	MB
	GB
)

const HelpTemplate = `NAME:
   {{.Name}} - {{.Usage}}
USAGE:
   {{.HelpName}} {{if .VisibleFlags}}[global options]{{end}}{{if .Commands}} command [command options]{{end}} {{if .ArgsUsage}}{{.ArgsUsage}}{{else}}[arguments...]{{end}}
   {{if len .Authors}}
AUTHOR:
   {{range .Authors}}{{ . }}{{end}}
   {{end}}{{if .Commands}}
COMMANDS:
{{range .Commands}}{{if not .HideHelp}}   {{join .Names ", "}}{{ "\t"}}{{.Usage}}{{ "\n" }}{{end}}{{end}}{{end}}{{if .VisibleFlags}}
GLOBAL OPTIONS:
   {{range .VisibleFlags}}{{.}}
   {{end}}{{end}}{{if .Copyright }}
COPYRIGHT:
   {{.Copyright}}
   {{end}}{{if .Version}}
VERSION:
   {{.Version}}
   {{end}}
`

// zap field keys shared by every failure log
const (
	LogFieldParams = "params"
	LogFieldValue  = "value"
	LogFieldPath   = "path"
	LogFieldRecord = "record"
)

// Component names used as the common log field of each module.
const (
	Component = "component"
	Dastcom5  = "dastcom5"
	Cli       = "cli"
)

// Archive layout, relative to the base directory.
const (
	ArchiveDirName   = "dastcom5"
	AsteroidFileName = "dast5_le.dat"
	CometFileName    = "dcom5_le.dat"
	IndexFileName    = "dastcom.idx"
)
