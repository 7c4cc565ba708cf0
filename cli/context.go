package cli

import (
	"context"
	"io"
	"time"

	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/sirupsen/logrus"
)

// AppContext holds what the commands need from the outside world, so that tests
// can swap the filesystem, the clock and the standard streams.
type AppContext struct {
	Ctx     context.Context
	FS      vfs.FileSystem
	Logger  *logrus.Logger
	TimeNow func() time.Time

	Stdout io.Writer
	Stderr io.Writer
}
