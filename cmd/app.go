package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/pders01/neuronest/internal/api"
	"github.com/pders01/neuronest/internal/config"
	"github.com/pders01/neuronest/internal/logging"
	"github.com/pders01/neuronest/internal/session"
	"github.com/pders01/neuronest/internal/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app is everything a command needs, built fresh for each run
type app struct {
	cfg      *config.Config
	logger   logging.Logger
	client   *api.Client
	session  *session.Store
	headless *ui.Headless
	prompt   *ui.Prompter

	closers []func() error
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

// loadApp reads the configuration, opens the token store and restores the session
func loadApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(level)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, headless: ui.NewHeadless()}
	a.closers = append(a.closers, logger.Sync)
	if cfg.UI.NoInput {
		a.headless.Force(true)
	}
	a.prompt = ui.NewPrompter(a.headless)

	tokens, err := a.openTokenStore()
	if err != nil {
		return nil, err
	}

	// the session is the client's token source and the client is the session's authenticator
	a.session = session.New(nil, tokens, logger)
	a.client, err = api.NewClient(cfg.API.URL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithTokenSource(a.session),
		api.WithLogger(logger),
	)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.session.SetAuthenticator(a.client)

	if err := a.session.Init(ctx); err != nil {
		logger.Warnf("failed to read stored session: %v", err)
	}
	logger.Debugf("session %s against %s", a.session.State(), a.client.BaseURL())

	return a, nil
}

func (a *app) openTokenStore() (session.TokenStore, error) {
	switch a.cfg.Session.Backend {
	case config.BackendBadger:
		store, err := session.OpenBadgerTokenStore(filepath.Join(a.cfg.Session.Dir, "badger"))
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	default:
		return session.NewFileTokenStore(afero.NewOsFs(), a.cfg.Session.Dir), nil
	}
}

// Close releases the token store and flushes the logger
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warnf("close: %v", err)
		}
	}
}

// requireLogin fails unless a user is logged in
func (a *app) requireLogin() error {
	if !a.session.IsAuthenticated() {
		return session.ErrNotAuthenticated
	}
	return nil
}

// busy runs fn behind a spinner
func (a *app) busy(title string, fn func() error) error {
	return ui.Busy(a.headless, errOut, title, fn)
}

// withRetry runs fn and, while it fails and the user agrees, runs it again.
// rerun is the command line shown when no terminal is attached.
func (a *app) withRetry(ctx context.Context, rerun string, fn func() error) error {
	return a.retryReporting(ctx, rerun, fn, func(err error) string {
		return ui.ErrorBox(api.Message(err))
	})
}

// retryReporting is withRetry with the failure rendered by report
func (a *app) retryReporting(ctx context.Context, rerun string, fn func() error, report func(error) string) error {
	for {
		err := fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, context.Canceled) {
			return err
		}

		fmt.Fprintln(out, report(err))
		if a.headless.IsHeadless() {
			fmt.Fprintf(errOut, "To retry, run: %s\n", rerun)
			return err
		}
		if !a.prompt.Retry(ctx) {
			return err
		}
	}
}
