package cli

import (
	"context"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/solvee/cli/cmd"
	"github.com/ardnew/solvee/lang"
	"github.com/ardnew/solvee/pkg"
)

const (
	configFile  = "config.toml"
	configTable = "config"
)

// CLI is the top-level command-line interface for solvee.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Source  []string         `help:"Source document(s), or '-' for stdin" name:"source" short:"s" type:"existingfile"`
	Version kong.VersionFlag `help:"Print version information and exit"`

	Init cmd.Init `cmd:"" help:"Write the configuration or theme file"`
	Fmt  cmd.Fmt  `cmd:"" help:"Format documents"`
	Repl cmd.Repl `cmd:"" help:"Evaluate lines interactively"`
	Pad  cmd.Pad  `cmd:"" help:"Edit a document with live results"`

	Eval cmd.Eval `cmd:"" default:"withargs" help:"Evaluate documents"`
}

// Run executes the solvee CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := pkg.MkdirAll()
	if err != nil {
		return err
	}

	configFilePath := pkg.ConfigPath(configFile)

	vars := kong.Vars{
		cmd.ConfigIdentifier:    configFilePath,
		cmd.CacheIdentifier:     pkg.CacheDir(),
		cmd.PrecisionIdentifier: strconv.Itoa(lang.DefaultPrecision),
		"version":               versionString(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Boolean log flags are not TextUnmarshalers, so they are found by an
	// early scan to configure logging before parsing.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(configTable), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSourceFiles(ctx, cli.Source)

	defer cli.Log.start(ctx)()

	// No-op unless built with tag pprof and a mode is set.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}

func versionString() string {
	s := pkg.Name + " " + pkg.Version
	if len(pkg.Author) > 0 {
		s += " by " + pkg.Author[0].String()
	}

	return s
}
