// Package cli implements the interactive registry client: a small REPL that
// acts on behalf of the identity named in the configured access token.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/idregistry/internal/client/client"
	"github.com/dmitrijs2005/idregistry/internal/client/config"
)

type App struct {
	config   *config.Config
	client   client.Client
	reader   *bufio.Reader
	out      io.Writer
	identity string
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewRegistryClientService(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	return &App{config: c, client: apiClient, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

// useToken installs token on the client and records the identity it names.
func (a *App) useToken(token string) error {
	id, err := client.TokenIdentity(token)
	if err != nil {
		return err
	}
	a.client.SetAccessToken(token)
	a.identity = id
	return nil
}

func (a *App) ensureToken() error {
	token := a.config.AccessToken
	if token == "" {
		secret, err := getSecret(a.out, "Enter access token: ")
		if err != nil {
			return err
		}
		token = string(secret)
	}
	return a.useToken(token)
}

// callCtx bounds one server call by the configured request timeout.
func (a *App) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) status() string {
	if a.identity == "" {
		return "(anonymous)"
	}
	return fmt.Sprintf("(%s)", a.identity)
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()

	fmt.Fprintln(a.out, "Identity registry CLI (type 'help' for commands)")

	if err := a.ensureToken(); err != nil {
		fmt.Fprintf(a.out, "No usable token (%v); only queries will work\n", err)
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
}
