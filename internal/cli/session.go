package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/voltcraft/troubleshoot"
	"github.com/voltcraft/troubleshoot/internal/config"
	"github.com/voltcraft/troubleshoot/internal/presentation/tui"
	"github.com/voltcraft/troubleshoot/pkg/domain"
)

// RunOptions configures an interactive terminal session.
type RunOptions struct {
	Config    config.Config
	SessionID string // resume or create this session; empty means ephemeral
	Headless  bool   // no banner and no ANSI rendering
	Input     io.Reader
	Output    io.Writer
}

// RunSession runs the terminal wizard until the user quits, input ends or a
// signal arrives.
func RunSession(ctx context.Context, opts RunOptions, logger *slog.Logger) error {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	engine, err := NewEngine(opts.Config, logger)
	if err != nil {
		return err
	}

	r := troubleshoot.NewRunner(opts.Input, opts.Output)
	r.Headless = opts.Headless
	if !opts.Headless {
		tui.PrintBanner(opts.Output)
		if f, ok := opts.Output.(*os.File); ok && tui.IsTerminal(f) {
			render, err := tui.NewRenderer()
			if err != nil {
				logger.Warn("falling back to plain output", "err", err)
			} else {
				r.Renderer = render
			}
		}
	}

	sigCtx := NewSignalContext(ctx)
	defer sigCtx.Cancel()

	state := engine.NewState("")
	if opts.SessionID != "" {
		manager, closeStore, err := NewSessions(opts.Config, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := closeStore(); err != nil {
				logger.Warn("failed to close session store", "err", err)
			}
		}()

		state, err = manager.LoadOrCreate(sigCtx, opts.SessionID)
		if err != nil {
			return fmt.Errorf("failed to init session: %w", err)
		}
		r.Store = manager.Store()
		logger.Info("session ready", "session_id", opts.SessionID, "category", state.Category)
	}

	final, runErr := r.Run(sigCtx, engine, state)
	if sig := sigCtx.Signal(); sig != nil {
		logger.Info("interrupted", "signal", sig.String())
		return nil
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if final != nil && final.Phase() == domain.PhaseResult {
		logger.Debug("session finished with a diagnosis", "diagnosis", final.Result.Diagnosis)
	}
	return nil
}
