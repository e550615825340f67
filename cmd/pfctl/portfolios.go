package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/google/subcommands"
)

type portfoliosCmd struct {
	out io.Writer
	raw bool
}

func (*portfoliosCmd) Name() string     { return "portfolios" }
func (*portfoliosCmd) Synopsis() string { return "list portfolios with their buy-price metrics" }
func (*portfoliosCmd) Usage() string {
	return `pfctl portfolios [-raw]

  Lists every portfolio with its total value, average buy price and quantity.
`
}

func (c *portfoliosCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print plain markdown without terminal styling")
}

func (c *portfoliosCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	portfolios, err := a.Services.Portfolio.GetAllPortfolios(ctx)
	if err != nil {
		return fail(err)
	}

	var b strings.Builder
	b.WriteString("| ID | Name | Total value | Avg buy price | Quantity |\n")
	b.WriteString("|---|---|---:|---:|---:|\n")
	for _, p := range portfolios {
		m, err := a.Services.Portfolio.GetPortfolioMetrics(ctx, p.ID)
		if err != nil {
			return fail(err)
		}
		fmt.Fprintf(&b, "| %s | %s | %.2f | %.2f | %g |\n", p.ID, p.Name, m.TotalValue, m.AvgBuyPrice, m.TotalQuantity)
	}

	if c.raw {
		fmt.Fprint(c.out, b.String())
	} else {
		printMarkdown(c.out, b.String())
	}
	return subcommands.ExitSuccess
}
