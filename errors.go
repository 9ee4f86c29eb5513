package match

import "errors"

// CancelOrder deliberately does not have a sentinel error here: an absent
// id and an owner mismatch are both benign per §7 and surface as a plain
// false return, not an error. Only Market's symbol routing has a real
// error boundary.
var (
	// ErrMarketNotFound is returned when a Market operation targets a
	// symbol that has no order book.
	ErrMarketNotFound = errors.New("match: market not found")

	// ErrMarketExists is returned by Market.CreateBook when the symbol
	// already has an order book.
	ErrMarketExists = errors.New("match: market already exists")
)
