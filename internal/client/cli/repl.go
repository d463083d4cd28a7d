package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/nestify/internal/client/login"
)

// printlnFn is a test seam for REPL output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	settle(ctx context.Context)

	Login(ctx context.Context) error
	Phone(ctx context.Context, number string) error
	SendOTP(ctx context.Context) error
	VerifyOTP(ctx context.Context, code, name string) error
	ChangeNumber(ctx context.Context) error
	SwitchMode(ctx context.Context, tab login.Tab) error
	Google(ctx context.Context) error
	GoogleCallback(ctx context.Context, code string) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context, refresh bool) error
	Menu(ctx context.Context) error
	Open(ctx context.Context, target string) error
	Theme(ctx context.Context, arg string) error
}

const (
	helpSignedOut = "Available commands: login, phone <number>, otp send|verify <code> [name]|change, mode email|phone, google [callback <code>], theme [dark|light|toggle], exit"
	helpSignedIn  = "Available commands: menu, open <path|number>, whoami [--refresh], theme [dark|light|toggle], logout, exit"
)

// runREPL starts a simple read–eval–print loop for the Nestify console.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on a. After every command the pending navigation,
// if any, is rendered. The loop exits on EOF, on "exit" or "quit", or when
// ctx is cancelled.
//
// Errors returned by command handlers are ignored here; handlers print
// their own notices. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("nestify %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}

		case "login":
			_ = a.Login(ctx)

		case "phone":
			if len(args) != 1 {
				printlnFn("Usage: phone <number>")
				break
			}
			_ = a.Phone(ctx, args[0])

		case "otp":
			runOTP(ctx, a, args)

		case "mode":
			if len(args) != 1 || (args[0] != string(login.TabEmail) && args[0] != string(login.TabPhone)) {
				printlnFn("Usage: mode email|phone")
				break
			}
			_ = a.SwitchMode(ctx, login.Tab(args[0]))

		case "google":
			switch {
			case len(args) == 0:
				_ = a.Google(ctx)
			case len(args) == 2 && args[0] == "callback":
				_ = a.GoogleCallback(ctx, args[1])
			default:
				printlnFn("Usage: google [callback <code>]")
			}

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx, len(args) > 0 && args[0] == "--refresh")

		case "menu":
			_ = a.Menu(ctx)

		case "open":
			if len(args) != 1 {
				printlnFn("Usage: open <path|number>")
				break
			}
			_ = a.Open(ctx, args[0])

		case "theme":
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			_ = a.Theme(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		a.settle(ctx)

		if err != nil {
			return
		}
	}
}

func runOTP(ctx context.Context, a execIface, args []string) {
	if len(args) == 0 {
		printlnFn("Usage: otp send|verify <code> [name]|change")
		return
	}
	switch args[0] {
	case "send":
		_ = a.SendOTP(ctx)
	case "verify":
		if len(args) < 2 {
			printlnFn("Usage: otp verify <code> [name]")
			return
		}
		_ = a.VerifyOTP(ctx, args[1], strings.Join(args[2:], " "))
	case "change":
		_ = a.ChangeNumber(ctx)
	default:
		printlnFn("Usage: otp send|verify <code> [name]|change")
	}
}
