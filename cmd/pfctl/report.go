package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/render"
)

type reportCmd struct {
	out         io.Writer
	portfolioID string
	format      string
	output      string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "render the portfolio summary report" }
func (*reportCmd) Usage() string {
	return `pfctl report [-p <portfolio id>] [-format md|html|pdf] [-o <file>]

  Builds the summary report, enriched with live market data. The md format is
  shown in the terminal; html and pdf are written to a file. A pdf request
  falls back to html when no browser is available.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolioID, "p", "", "portfolio id (defaults to every position)")
	f.StringVar(&c.format, "format", "md", "output format: md, html or pdf")
	f.StringVar(&c.output, "o", "", "output file for html and pdf (defaults to the report filename)")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.format != "md" && c.format != string(render.FormatHTML) && c.format != string(render.FormatPDF) {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}

	a, err := loadApp()
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	report, err := a.Services.Report.BuildReport(ctx, c.portfolioID)
	if err != nil {
		return fail(err)
	}

	if c.format == "md" {
		md, err := render.Markdown(report)
		if err != nil {
			return fail(err)
		}
		printMarkdown(c.out, md)
		return subcommands.ExitSuccess
	}

	doc, err := a.Services.Renderer.Render(ctx, report, render.Format(c.format))
	if err != nil {
		return fail(err)
	}

	target := c.output
	if target == "" {
		target = doc.Filename
	}
	if err := os.WriteFile(target, doc.Body, 0o644); err != nil {
		return fail(err)
	}

	fmt.Fprintf(c.out, "wrote %s (%s, %d bytes)\n", target, doc.ContentType, len(doc.Body))
	return subcommands.ExitSuccess
}
