package request

// CreateShareLinkRequest describes a new share link. Every field is optional;
// an empty password means the link is not password protected.
type CreateShareLinkRequest struct {
	Password        string  `json:"password,omitempty"`
	ExpireInMinutes *int    `json:"expireInMinutes,omitempty"`
	MaxViews        *int    `json:"maxViews,omitempty"`
	PortfolioID     *string `json:"portfolioId,omitempty"`
}
