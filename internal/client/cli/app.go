package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/pinkeeper/internal/client/client"
	"github.com/dmitrijs2005/pinkeeper/internal/client/config"
	"github.com/dmitrijs2005/pinkeeper/internal/client/services"
	"github.com/dmitrijs2005/pinkeeper/internal/client/store"
	"github.com/dmitrijs2005/pinkeeper/internal/logging"
)

// newAuthService is a test seam. It opens the local store and the backup
// client configured in cfg.
var newAuthService = func(ctx context.Context, cfg *config.Config, logger logging.Logger) (services.AuthService, error) {
	st, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	cl, err := client.New(ctx, cfg, logger, nil)
	if err != nil {
		return nil, errors.Join(err, st.Close())
	}
	return services.NewAuthService(cl, st, logger), nil
}

// App holds the state shared by all commands of one invocation.
type App struct {
	config *config.Config

	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer

	logger      logging.Logger
	authService services.AuthService
}

// NewApp constructs an App reading from stdin and writing to stdout/stderr.
func NewApp(cfg *config.Config) *App {
	return &App{
		config: cfg,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

// Run executes the command line args (without the program name).
func (a *App) Run(ctx context.Context, args []string) error {
	root := a.RootCommand()
	root.SetArgs(args)
	root.SetIn(a.reader)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	err := root.ExecuteContext(ctx)
	return errors.Join(err, a.teardown())
}

// setup builds the logger and, unless the command opts out, the AuthService.
func (a *App) setup(ctx context.Context, remote, local bool) error {
	logger, err := logging.New(a.errOut, a.config.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logger

	if !local {
		return nil
	}
	if remote {
		if err := a.config.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}

	svc, err := newAuthService(ctx, a.config, a.logger)
	if err != nil {
		return err
	}
	a.authService = svc
	return nil
}

func (a *App) teardown() error {
	if a.authService == nil {
		return nil
	}
	err := a.authService.Close()
	a.authService = nil
	return err
}
