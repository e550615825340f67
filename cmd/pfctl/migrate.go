package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/database"
)

type migrateCmd struct {
	out io.Writer
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply pending database migrations" }
func (*migrateCmd) Usage() string {
	return `pfctl migrate

  Opens the configured database, applies every pending migration and prints
  the resulting schema version.
`
}

func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (c *migrateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	version, err := database.SchemaVersion(a.DB)
	if err != nil {
		return fail(err)
	}

	fmt.Fprintf(c.out, "%s is at schema version %d\n", a.Config.Database.Path, version)
	return subcommands.ExitSuccess
}
