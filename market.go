package match

import "sync"

// Market shards a set of OrderBooks by symbol, one exclusively-owned book
// per symbol. It is the trivial routing layer described in §6: it
// contributes no matching logic of its own, only symbol lookup. Multiple
// goroutines may call Market concurrently for different symbols; a single
// symbol's book is still only safe to drive from one goroutine at a time
// (§5) — Market does not add per-book locking, it only protects its own
// symbol -> book map.
type Market struct {
	books sync.Map // string -> *OrderBook
}

// NewMarket creates an empty Market with no books.
func NewMarket() *Market {
	return &Market{}
}

// CreateBook registers a new, empty OrderBook for symbol. Returns
// ErrMarketExists if symbol already has a book.
func (m *Market) CreateBook(symbol string, opts ...Option) (*OrderBook, error) {
	book := NewOrderBook(symbol, opts...)
	if _, loaded := m.books.LoadOrStore(symbol, book); loaded {
		return nil, ErrMarketExists
	}
	logger.Info("market created", "symbol", symbol)
	return book, nil
}

// Book returns the OrderBook for symbol, or ErrMarketNotFound.
func (m *Market) Book(symbol string) (*OrderBook, error) {
	v, ok := m.books.Load(symbol)
	if !ok {
		return nil, ErrMarketNotFound
	}
	return v.(*OrderBook), nil
}

// Symbols returns every symbol currently routed by this Market. Order is
// unspecified.
func (m *Market) Symbols() []string {
	var symbols []string
	m.books.Range(func(key, _ any) bool {
		symbols = append(symbols, key.(string))
		return true
	})
	return symbols
}

// PlaceLimitOrder routes a possibly-marketable limit order to symbol's
// book, stamping o.Symbol on the way in. Returns ErrMarketNotFound if no
// book exists for the symbol.
func (m *Market) PlaceLimitOrder(symbol string, o *Order) ([]Trade, error) {
	book, err := m.Book(symbol)
	if err != nil {
		return nil, err
	}
	o.Symbol = symbol
	return book.ProcessLimitOrder(o), nil
}

// PlaceMarketOrder routes a market order to symbol's book.
func (m *Market) PlaceMarketOrder(symbol string, agentID uint64, side Side, volume uint64) ([]Trade, error) {
	book, err := m.Book(symbol)
	if err != nil {
		return nil, err
	}
	return book.ProcessMarketOrder(agentID, side, volume), nil
}

// CancelOrder routes a cancellation to symbol's book.
func (m *Market) CancelOrder(symbol string, orderID, agentID uint64) (bool, error) {
	book, err := m.Book(symbol)
	if err != nil {
		return false, err
	}
	return book.CancelOrder(orderID, agentID), nil
}
