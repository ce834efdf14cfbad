package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scrambler/pkg/observability"
)

// logHooks reports capture failures and helper process lifecycles to the
// run's logger.
type logHooks struct {
	observability.NoopFrameHooks
	logger *log.Logger
}

func (h logHooks) OnCaptureError(_ context.Context, err error) {
	h.logger.Error("capture failed", "err", err)
}

func (h logHooks) OnProcessStart(_ context.Context, name string, args []string) {
	h.logger.Debug("started", "process", name, "args", strings.Join(args, " "))
}

func (h logHooks) OnProcessExit(_ context.Context, name string, err error) {
	h.logger.Debug("exited", "process", name, "err", err)
}

// registerHooks installs logHooks for frame and process events. Frame events
// are also forwarded to each of extra.
func registerHooks(logger *log.Logger, extra ...observability.FrameHooks) {
	h := logHooks{logger: logger}
	observability.SetFrameHooks(append(observability.MultiFrameHooks{h}, extra...))
	observability.SetProcessHooks(h)
}
