package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	WhoAmI(ctx context.Context) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Update(ctx context.Context) error
	Profile(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
	Deactivate(ctx context.Context, args []string) error
	Reactivate(ctx context.Context, args []string) error
	Events(ctx context.Context, args []string) error
	Ping(ctx context.Context) error
}

const helpText = `Available commands:
  whoami                 show the identity of the access token
  register               create your profile
  login                  record a login
  update                 change username, email or public key
  profile [identity]     show a profile (default: yours)
  status [identity]      show registration and activity flags
  deactivate [identity]  deactivate an account (yours, or any as owner)
  reactivate <identity>  reactivate an account (owner only)
  events [since]         list registry events after a sequence number
  ping                   check the server
  exit | quit            leave the program`

// runREPL reads commands from scanner until EOF or exit. Command errors are
// printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("idr %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn(helpText)

		case "whoami":
			err = a.WhoAmI(ctx)

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "update":
			err = a.Update(ctx)

		case "profile":
			err = a.Profile(ctx, args)

		case "status":
			err = a.Status(ctx, args)

		case "deactivate":
			err = a.Deactivate(ctx, args)

		case "reactivate":
			if len(args) == 0 {
				printlnFn("Usage: reactivate <identity>")
				continue
			}
			err = a.Reactivate(ctx, args)

		case "events":
			err = a.Events(ctx, args)

		case "ping":
			err = a.Ping(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
