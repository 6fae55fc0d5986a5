package cli

import (
	"context"
	"errors"

	"github.com/alecthomas/kong"

	"github.com/ardnew/aka/cli/cmd"
	"github.com/ardnew/aka/pkg"
	"github.com/ardnew/aka/shell"
)

// CLI is the top-level command-line interface for aka.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit"`

	Dir   string `default:"${aliasDir}" help:"Alias directory"                type:"path"`
	Shell string `default:"native"      help:"Shell used to run command lines" enum:"native,virtual"`

	Run    cmd.Run    `cmd:"" default:"withargs" help:"Run an alias"`
	Expand cmd.Expand `cmd:""                    help:"Show how an alias would run, without running it"`
	List   cmd.List   `cmd:""                    help:"List aliases"`
	Init   cmd.Init   `cmd:""                    help:"Write the current settings to the configuration file"`
}

// Args returns the command line to parse for a program invoked as invoked
// with the given arguments. Under any name other than [pkg.Name] the
// program runs the alias of that name, passing every argument through.
func Args(invoked string, args []string) []string {
	if invoked == pkg.Name {
		return args
	}

	return append([]string{"run", invoked, "--"}, args...)
}

// ExitCode returns the process exit status for an error returned by [Run]:
// the status of a failed command when err carries one, otherwise 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var o shell.Outcome
	if errors.As(err, &o) {
		return o.ExitCode()
	}

	return 1
}

// Run executes the aka CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"aliasDir":           configPath(baseAliases),
		"version":            pkg.Version(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
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
		kong.Configuration(load, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithGlobals(ctx, cmd.Globals{Dir: cli.Dir, Shell: cli.Shell})

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
