package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/idregistry/internal/api"
)

var errNoIdentity = errors.New("no identity: start the CLI with a valid token (-t)")

// target returns the identity named in args, or the caller's own.
func (a *App) target(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if a.identity == "" {
		return "", errNoIdentity
	}
	return a.identity, nil
}

func (a *App) printProfile(p api.Profile) {
	fmt.Fprintf(a.out, "identity:      %s\n", p.Identity)
	fmt.Fprintf(a.out, "username:      %s\n", p.Username)
	fmt.Fprintf(a.out, "email:         %s\n", p.Email)
	if p.PublicKey != "" {
		fmt.Fprintf(a.out, "public key:    %s\n", p.PublicKey)
	}
	fmt.Fprintf(a.out, "registered at: %s\n", p.RegisteredAt.Format(time.RFC3339Nano))
	if p.LastLogin.IsZero() {
		fmt.Fprintln(a.out, "last login:    never")
	} else {
		fmt.Fprintf(a.out, "last login:    %s\n", p.LastLogin.Format(time.RFC3339Nano))
	}
	fmt.Fprintf(a.out, "active:        %t\n", p.IsActive)
}

func (a *App) WhoAmI(ctx context.Context) error {
	if a.identity == "" {
		return errNoIdentity
	}
	fmt.Fprintln(a.out, a.identity)
	return nil
}

func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	publicKey, err := getSimpleText(a.reader, "Enter public key (optional)", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	p, err := a.client.Register(ctx, username, email, publicKey)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registered!")
	a.printProfile(p)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	at, err := a.client.Login(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in at %s\n", at.Format(time.RFC3339Nano))
	return nil
}

func (a *App) Update(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "New username (empty to keep)", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "New email (empty to keep)", a.out)
	if err != nil {
		return err
	}
	publicKey, err := getSimpleText(a.reader, "New public key (empty to keep)", a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	p, err := a.client.UpdateProfile(ctx, username, email, publicKey)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Updated!")
	a.printProfile(p)
	return nil
}

func (a *App) Profile(ctx context.Context, args []string) error {
	id, err := a.target(args)
	if err != nil {
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	p, err := a.client.GetProfile(ctx, id)
	if err != nil {
		return err
	}
	a.printProfile(p)
	return nil
}

func (a *App) Status(ctx context.Context, args []string) error {
	id, err := a.target(args)
	if err != nil {
		return err
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	registered, err := a.client.IsRegistered(ctx, id)
	if err != nil {
		return err
	}
	active, err := a.client.IsActive(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s: registered=%t active=%t\n", id, registered, active)
	return nil
}

func (a *App) Deactivate(ctx context.Context, args []string) error {
	var id string
	if len(args) > 0 {
		id = args[0]
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.client.Deactivate(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deactivated.")
	return nil
}

func (a *App) Reactivate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("identity required")
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.client.Reactivate(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Reactivated.")
	return nil
}

func (a *App) Events(ctx context.Context, args []string) error {
	var since int64
	if len(args) > 0 {
		v, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid sequence number %q", args[0])
		}
		since = v
	}

	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	events, err := a.client.ListEvents(ctx, since, 0)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintln(a.out, "No events.")
		return nil
	}
	for _, e := range events {
		line := fmt.Sprintf("#%d %s %-10s %s", e.Seq, e.Timestamp.Format(time.RFC3339Nano), e.Kind, e.Identity)
		if e.Username != "" {
			line += fmt.Sprintf(" username=%s email=%s", e.Username, e.Email)
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	ctx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.client.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "OK")
	return nil
}
