package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/validation"
)

type shareCmd struct {
	out         io.Writer
	portfolioID string
	password    string
	expire      int
	maxViews    int
}

func (*shareCmd) Name() string     { return "share" }
func (*shareCmd) Synopsis() string { return "create a share link for the summary report" }
func (*shareCmd) Usage() string {
	return `pfctl share [-p <portfolio id>] [-password <pw>] [-expire <minutes>] [-max-views <n>]

  Creates a share link and prints its URL. Zero values leave the link
  unrestricted in that dimension.
`
}

func (c *shareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolioID, "p", "", "portfolio id (defaults to every position)")
	f.StringVar(&c.password, "password", "", "password required to open the link")
	f.IntVar(&c.expire, "expire", 0, "minutes until the link expires")
	f.IntVar(&c.maxViews, "max-views", 0, "number of times the link may be opened")
}

func (c *shareCmd) request() request.CreateShareLinkRequest {
	req := request.CreateShareLinkRequest{Password: c.password}
	if c.portfolioID != "" {
		req.PortfolioID = &c.portfolioID
	}
	if c.expire != 0 {
		req.ExpireInMinutes = &c.expire
	}
	if c.maxViews != 0 {
		req.MaxViews = &c.maxViews
	}
	return req
}

func (c *shareCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	req := c.request()
	if err := validation.ValidateCreateShareLink(req); err != nil {
		return fail(err)
	}

	a, err := loadApp()
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	link, err := a.Services.Share.CreateShareLink(ctx, req)
	if err != nil {
		return fail(err)
	}

	fmt.Fprintf(c.out, "%s/view/%s\n", a.Config.Server.PublicBaseURL, link.Token)
	if link.ExpiresAt != nil {
		fmt.Fprintf(c.out, "expires %s\n", link.ExpiresAt.Format("2006-01-02 15:04 MST"))
	}
	return subcommands.ExitSuccess
}
