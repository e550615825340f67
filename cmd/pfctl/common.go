package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/app"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/logging"
)

// commands lists every pfctl subcommand, writing their output to out.
func commands(out io.Writer) []subcommands.Command {
	return []subcommands.Command{
		&migrateCmd{out: out},
		&portfoliosCmd{out: out},
		&priceCmd{out: out},
		&reportCmd{out: out},
		&shareCmd{out: out},
	}
}

// loadApp reads the configuration the same way the server does and builds
// the application. Logs go to stderr so they never mix with command output.
func loadApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if level == "info" {
		level = "warn"
	}
	logger := logging.New(logging.Config{Level: level, FilePath: cfg.Logging.FilePath})

	return app.New(cfg, logger)
}

// printMarkdown renders md for the terminal, falling back to the raw text
// when styling fails.
func printMarkdown(out io.Writer, md string) {
	styled, err := glamour.Render(md, "dark")
	if err != nil {
		fmt.Fprint(out, md)
		return
	}
	fmt.Fprint(out, styled)
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
