package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App implements
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Write(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, tag string) error
	Tags(ctx context.Context) error
	Heatmap(ctx context.Context, days string) error
	Export(ctx context.Context) error
	persistSession(ctx context.Context)
}

const (
	helpLoggedOut = "Available commands: login, help, exit"
	helpLoggedIn  = "Available commands: write, edit <id>, delete <id>, (l)ist [tag], tags, heatmap [days], export, logout, help, exit"
)

// runREPL reads commands line by line and dispatches them to a until EOF,
// "exit"/"quit" or ctx cancellation. Errors returned by handlers are printed
// and the loop continues. After every command of a logged-in user the session
// is persisted, so a token pair rotated mid-command survives a crash.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(out, "dk %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, arg := parts[0], strings.Join(parts[1:], " ")

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(out, "Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, arg, out); err != nil {
			fmt.Fprintln(out, "Error:", err)
		}
		if a.isLoggedIn() {
			a.persistSession(ctx)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd, arg string, out io.Writer) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			fmt.Fprintln(out, helpLoggedIn)
		} else {
			fmt.Fprintln(out, helpLoggedOut)
		}
		return nil
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		switch cmd {
		case "logout", "write", "edit", "delete", "l", "list", "tags", "heatmap", "export":
			fmt.Fprintln(out, "Please login first")
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "write":
		return a.Write(ctx)
	case "edit":
		return a.Edit(ctx, arg)
	case "delete":
		return a.Delete(ctx, arg)
	case "l", "list":
		return a.List(ctx, arg)
	case "tags":
		return a.Tags(ctx)
	case "heatmap":
		return a.Heatmap(ctx, arg)
	case "export":
		return a.Export(ctx)
	default:
		fmt.Fprintln(out, "Unknown command:", cmd)
		return nil
	}
}
