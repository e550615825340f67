package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrPositionNotFound indicates that a position with the given ID does not exist.
	ErrPositionNotFound = errors.New("position not found")

	// ErrSymbolNotFound indicates that no price history provider knows the symbol.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrNoPriceData indicates that a price history was found but held no usable rows.
	ErrNoPriceData = errors.New("no price data")
)

// Share-link errors. Each one is a distinct outcome of validating a token and
// maps to its own HTTP status.
var (
	// ErrShareLinkNotFound indicates that no share link carries the token.
	ErrShareLinkNotFound = errors.New("share link not found")

	// ErrShareLinkExpired indicates that the link's expiry time has passed.
	ErrShareLinkExpired = errors.New("share link expired")

	// ErrSharePasswordRequired is returned both when a password is missing and
	// when it does not match.
	ErrSharePasswordRequired = errors.New("password required")

	// ErrShareViewLimitReached indicates that the link has been viewed maxViews times.
	ErrShareViewLimitReached = errors.New("view limit reached")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidDate indicates a date parameter that is missing or not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	ErrInvalidPortfolioID = errors.New("portfolio ID is required")
	ErrInvalidSymbol      = errors.New("symbol is required")
	ErrMissingToken       = errors.New("token is required")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrievePortfolios = errors.New("failed to retrieve portfolios")
	ErrFailedToRetrievePositions  = errors.New("failed to retrieve positions")
	ErrFailedToRetrievePrice      = errors.New("failed to retrieve price")
	ErrFailedToBuildReport        = errors.New("failed to build report")
	ErrFailedToCreateShareLink    = errors.New("failed to create share link")
	ErrFailedToValidateShareLink  = errors.New("failed to validate share link")
	ErrFailedToRetrievePrefs      = errors.New("failed to retrieve preferences")
	ErrFailedToSavePrefs          = errors.New("failed to save preferences")
)

// ErrRendererUnavailable indicates that the PDF backend could not produce a document.
var ErrRendererUnavailable = errors.New("pdf renderer unavailable")
