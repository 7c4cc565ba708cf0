package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/root-talis/mig/cli"
	"github.com/root-talis/mig/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := osfs.New()

	if err := config.LoadEnv(fs, ".env"); err != nil {
		return err
	}

	c, err := cli.New(config.DefaultPath(fs), version())
	if err != nil {
		return err
	}

	if err = c.Parse(os.Args[1:]); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return c.Execute(&cli.AppContext{
		Ctx:     ctx,
		FS:      fs,
		Logger:  newLogger(),
		TimeNow: time.Now,
		Stdout:  colorable.NewColorable(os.Stdout),
		Stderr:  colorable.NewColorable(os.Stderr),
	})
}

func newLogger() *logrus.Logger {
	tty := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

	logger := logrus.New()
	logger.SetOutput(colorable.NewColorable(os.Stderr))
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   tty,
		DisableColors: !tty,
	})

	return logger
}

func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "mig (devel)"
	}

	return "mig " + info.Main.Version
}
