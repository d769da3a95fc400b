// Package cli implements the interactive terminal client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/authvault/internal/client/client"
	"github.com/dmitrijs2005/authvault/internal/client/config"
)

// App is the interactive CLI session. The bearer token lives in memory
// only for the lifetime of the process.
type App struct {
	config    *config.Config
	api       *client.Client
	token     string
	userEmail string
	reader    *bufio.Reader
	out       io.Writer
}

// NewApp builds an App talking to the server named in c.
func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    client.New(c.ServerAddr),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) getStatus() string {
	if a.userEmail == "" {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.userEmail)
}

// Run reads commands until exit or EOF.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "authvault CLI (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "authvault %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil && line == "" {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: whoami, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: register, login, exit")
			}
		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "whoami":
			a.whoami(ctx)
		case "logout":
			a.logout()
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", parts[0])
		}
	}
}
