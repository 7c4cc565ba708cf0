// Package cli implements the mig command line interface.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/root-talis/mig"
	"github.com/root-talis/mig/config"
)

// CLI is the command line interface of mig.
type CLI struct {
	Up     Up     `kong:"cmd,help='Apply all pending migrations.'"`
	Down   Down   `kong:"cmd,help='Roll back every applied migration.'"`
	Status Status `kong:"cmd,help='Show the state of every known migration.'"`
	Create Create `kong:"cmd,help='Create an empty pair of migration scripts.'"`

	Globals Globals          `embed:""`
	Version kong.VersionFlag `kong:"help='Output version and exit.'"`

	kong *kong.Kong
	kctx *kong.Context
}

// Globals are the flags shared by every command. Empty values are taken from the
// configuration file, then from the defaults.
type Globals struct {
	// NOTE: kong.ConfigFlag isn't used, the file is read by the config package so
	// that its values never take precedence over flags or environment variables.
	ConfigFile      string `kong:"name='config',default='${configFile}',help='Path to the configuration file.'"`
	Driver          string `kong:"help='Database driver: mysql, sqlite or duckdb.'"`
	DSN             string `kong:"name='dsn',help='Data source name of the target database.'"`
	Dir             string `kong:"help='Directory containing the migration scripts.'"`
	Table           string `kong:"help='Name of the table where applied migrations are recorded.'"`
	LogLevel        string `kong:"name='log-level',help='Logging level: debug, info, warn or error.'"`
	MetricsTextfile string `kong:"name='metrics-textfile',help='Write Prometheus metrics to this file once the command is done.'"`
}

// New initializes the command-line interface.
func New(configFilePath, version string) (*CLI, error) {
	c := &CLI{}
	kparser, err := kong.New(c,
		kong.Name("mig"),
		kong.Description("Apply and roll back ordered SQL schema migrations."),
		kong.UsageOnError(),
		kong.DefaultEnvars("MIG"),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		kong.Vars{
			"configFile": configFilePath,
			"version":    version,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed creating the Kong parser: %w", err)
	}

	c.kong = kparser

	return c, nil
}

// Parse the given command line arguments. This method must be called before
// Execute.
func (c *CLI) Parse(args []string) error {
	kctx, err := c.kong.Parse(args)
	if err != nil {
		return fmt.Errorf("failed parsing CLI arguments: %w", err)
	}
	c.kctx = kctx

	return nil
}

// Execute loads the configuration file and runs the parsed command.
func (c *CLI) Execute(appCtx *AppContext) (err error) {
	if c.kctx == nil {
		panic("the CLI wasn't initialized properly")
	}
	c.kong.Stdout = appCtx.Stdout
	c.kong.Stderr = appCtx.Stderr

	cfg := config.NewConfig(appCtx.FS, c.Globals.ConfigFile)
	if err = cfg.Load(); err != nil {
		return err
	}
	c.ApplyConfig(cfg)

	level, err := logrus.ParseLevel(c.Globals.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	appCtx.Logger.SetLevel(level)

	registry := prometheus.NewRegistry()
	metrics, err := mig.NewMetrics(registry)
	if err != nil {
		return err
	}

	if c.Globals.MetricsTextfile != "" {
		defer func() {
			if werr := prometheus.WriteToTextfile(c.Globals.MetricsTextfile, registry); werr != nil {
				err = errors.Join(err, fmt.Errorf("failed writing metrics: %w", werr))
			}
		}()
	}

	//nolint:wrapcheck // Commands wrap their own errors.
	return c.kctx.Run(appCtx, &c.Globals, metrics)
}

// Command returns the full path of the executed command.
func (c *CLI) Command() string {
	if c.kctx == nil {
		panic("the CLI wasn't initialized properly")
	}
	cmdPath := []string{}
	for _, p := range c.kctx.Path {
		if p.Command != nil {
			cmdPath = append(cmdPath, p.Command.Name)
		}
	}

	return strings.Join(cmdPath, " ")
}

// ApplyConfig applies configuration values to the CLI, but only if they weren't
// already set by a flag or an environment variable.
func (c *CLI) ApplyConfig(cfg *config.Config) {
	cfg.SetDefaults()

	g := &c.Globals
	if g.Driver == "" {
		g.Driver = cfg.Driver
	}
	if g.DSN == "" {
		g.DSN = cfg.DSN
	}
	if g.Dir == "" {
		g.Dir = cfg.Dir
	}
	if g.Table == "" {
		g.Table = cfg.Table
	}
	if g.LogLevel == "" {
		g.LogLevel = cfg.LogLevel
	}
}
