package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/google/subcommands"
)

type priceCmd struct {
	out    io.Writer
	symbol string
	date   string
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "look up the close of a symbol on a date" }
func (*priceCmd) Usage() string {
	return `pfctl price -s <symbol or company> [-d <YYYY-MM-DD>]

  Prints the close on or before the date, defaulting to today.
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "ticker symbol or company name")
	f.StringVar(&c.date, "d", "", "date in YYYY-MM-DD (defaults to today)")
}

func (c *priceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.date == "" {
		c.date = time.Now().Format("2006-01-02")
	}

	a, err := loadApp()
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	quote, err := a.Services.Price.GetPrice(ctx, c.symbol, c.date)
	if err != nil {
		return fail(err)
	}

	fmt.Fprintf(c.out, "%s\t%s\t%g\n", quote.Symbol, quote.Date, quote.Close)
	return subcommands.ExitSuccess
}
