package model

import "time"

// DefaultReportID identifies the only report kind a link can currently grant.
const DefaultReportID = "portfolio-summary"

// ShareLink is a tokenized grant to view a report.
// Password holds the encrypted password, never the plaintext.
type ShareLink struct {
	ID          string     `json:"id"`
	Token       string     `json:"token"`
	Password    *string    `json:"-"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	MaxViews    *int       `json:"maxViews"`
	Views       int        `json:"views"`
	PortfolioID *string    `json:"portfolioId"`
	ReportID    string     `json:"reportId"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// HasPassword reports whether the link is password protected.
func (l ShareLink) HasPassword() bool {
	return l.Password != nil && *l.Password != ""
}
