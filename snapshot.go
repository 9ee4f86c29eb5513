package match

// OrderBookSnapshot is an in-memory point-in-time copy of a book's resting
// orders. Persistence (writing this to disk or a message bus) is
// explicitly out of scope (§1 Non-goals); this exists purely so tests and
// in-process observers can inspect or replay book state without holding a
// live reference to the (not concurrency-safe) OrderBook.
type OrderBookSnapshot struct {
	Symbol   string
	TradeSeq uint64
	Bids     []Order // best price first, FIFO within a price
	Asks     []Order
}

// Snapshot captures the current resting state of the book by value.
func (b *OrderBook) Snapshot() OrderBookSnapshot {
	return OrderBookSnapshot{
		Symbol:   b.symbol,
		TradeSeq: b.tradeSeq,
		Bids:     b.bids.snapshotOrders(),
		Asks:     b.asks.snapshotOrders(),
	}
}

// Restore rebuilds an OrderBook from a snapshot, bypassing matching so
// that arrival order (and therefore FIFO priority) is preserved exactly
// as captured. It is the caller's responsibility to ensure snap was taken
// from a consistent state (§3 invariants) — Restore does not re-derive
// price-time priority, it replays it.
func Restore(symbol string, snap OrderBookSnapshot, opts ...Option) *OrderBook {
	b := NewOrderBook(symbol, opts...)
	b.tradeSeq = snap.TradeSeq

	for i := range snap.Bids {
		o := snap.Bids[i]
		b.bids.insert(&o)
		b.index[o.ID] = &o
	}
	for i := range snap.Asks {
		o := snap.Asks[i]
		b.asks.insert(&o)
		b.index[o.ID] = &o
	}
	return b
}
