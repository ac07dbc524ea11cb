package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/specialistvlad/rostergo/internal/ctxlog"
	"github.com/specialistvlad/rostergo/internal/shell"
)

// Run serves one interactive session read from in. The health check server,
// when enabled, lives exactly as long as the session. A session interrupted
// by cancelling ctx is a clean shutdown, not an error.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if err := a.startHealthcheckServer(ctx); err != nil {
		return err
	}
	defer a.closeHealthcheckServer(ctx)

	err := shell.New(a.registry, in, a.outW).Run(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		a.logger.Info("Session interrupted.", "stats", a.registry.Stats())
		return nil
	case err != nil:
		return fmt.Errorf("session failed: %w", err)
	}

	a.logger.Debug("App.Run method finished.", "stats", a.registry.Stats())
	return nil
}
