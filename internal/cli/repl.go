package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Contacts(ctx context.Context) error
	AddContact(ctx context.Context, email string) error
	AcceptContact(ctx context.Context, email string) error
	Chats(ctx context.Context) error
	Open(ctx context.Context, email string) error
	Send(ctx context.Context, text string) error
	CloseChat(ctx context.Context) error
	Export(ctx context.Context, path string) error
	Import(ctx context.Context, path string) error
	Reset(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the chatlite CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - reset          — wipe the dataset and reseed the demo users
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - search <term>     — find users by name or email
//	  - contacts          — list contacts with their status
//	  - add <email>       — send a contact request
//	  - accept <email>    — accept a pending request
//	  - chats             — list conversations, most recent first
//	  - open <email>      — open (or start) a direct conversation
//	  - send <text>       — send a message to the open conversation
//	  - close             — leave the open conversation view
//	  - export <file>     — write the whole dataset to a JSON file
//	  - import <file>     — load a dataset from a JSON file
//	  - logout            — log out
//	  - exit | quit       — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("chatlite %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: search, contacts, add, accept, chats, open, send, close, export, import, reset, logout, exit")
			} else {
				printlnFn("Available commands: register, login, reset, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <term>")
				continue
			}
			_ = a.Search(ctx, strings.Join(args, " "))

		case "contacts":
			_ = a.Contacts(ctx)

		case "add":
			if len(args) == 0 {
				printlnFn("Usage: add <email>")
				continue
			}
			_ = a.AddContact(ctx, args[0])

		case "accept":
			if len(args) == 0 {
				printlnFn("Usage: accept <email>")
				continue
			}
			_ = a.AcceptContact(ctx, args[0])

		case "chats", "list":
			_ = a.Chats(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <email>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "send":
			if len(args) == 0 {
				printlnFn("Usage: send <text>")
				continue
			}
			_ = a.Send(ctx, strings.Join(args, " "))

		case "close":
			_ = a.CloseChat(ctx)

		case "export":
			if len(args) == 0 {
				printlnFn("Usage: export <file>")
				continue
			}
			_ = a.Export(ctx, args[0])

		case "import":
			if len(args) == 0 {
				printlnFn("Usage: import <file>")
				continue
			}
			_ = a.Import(ctx, args[0])

		case "reset":
			_ = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
