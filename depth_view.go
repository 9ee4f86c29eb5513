package match

import treemap "github.com/igrmk/treemap/v2"

// AggregatedDepthBook is a read-only, replay-driven view of aggregate
// depth (price -> total resting volume) per side. It rebuilds its state
// purely from the BookEvent stream a Publisher hands it, without ever
// touching the live OrderBook — the intended use is a downstream reader
// (a dashboard, a risk snapshot) that cannot safely hold a reference into
// a book another goroutine is actively matching against (§5).
//
// Bids are stored under a descending comparator and asks under an
// ascending one so Best()/Levels() agree with OrderBook's own notion of
// best-of-book without the caller re-deriving it.
type AggregatedDepthBook struct {
	lastSeq uint64
	bids    *treemap.TreeMap[int64, uint64]
	asks    *treemap.TreeMap[int64, uint64]
}

// NewAggregatedDepthBook creates an empty view.
func NewAggregatedDepthBook() *AggregatedDepthBook {
	return &AggregatedDepthBook{
		bids: treemap.NewWithKeyCompare[int64, uint64](func(a, b int64) bool { return a > b }),
		asks: treemap.NewWithKeyCompare[int64, uint64](func(a, b int64) bool { return a < b }),
	}
}

// LastSeq returns the highest BookEvent.Seq applied so far, for gap
// detection by callers that consume events from a queue.
func (v *AggregatedDepthBook) LastSeq() uint64 {
	return v.lastSeq
}

// Apply folds one BookEvent into the aggregated view. Events must be
// applied in non-decreasing Seq order; Apply does not itself detect gaps,
// it only records the high-water mark via LastSeq.
func (v *AggregatedDepthBook) Apply(evt BookEvent) {
	if evt.Seq > v.lastSeq {
		v.lastSeq = evt.Seq
	}

	side := v.sideMap(evt.Side)

	switch evt.Type {
	case EventOpen:
		v.adjust(side, evt.Price, int64(evt.Volume))
	case EventCancel, EventMatch:
		v.adjust(side, evt.Price, -int64(evt.Volume))
	}
}

// ApplyAll folds a batch of events in order; it is what a Publisher
// implementation typically hands an AggregatedDepthBook directly.
func (v *AggregatedDepthBook) ApplyAll(events []BookEvent) {
	for _, evt := range events {
		v.Apply(evt)
	}
}

func (v *AggregatedDepthBook) sideMap(side Side) *treemap.TreeMap[int64, uint64] {
	if side == Buy {
		return v.bids
	}
	return v.asks
}

func (v *AggregatedDepthBook) adjust(m *treemap.TreeMap[int64, uint64], price int64, delta int64) {
	current, _ := m.Get(price)
	next := int64(current) + delta
	if next <= 0 {
		m.Del(price)
		return
	}
	m.Set(price, uint64(next))
}

// Depth returns the tracked volume at price on side, or 0 if untracked.
func (v *AggregatedDepthBook) Depth(side Side, price int64) uint64 {
	vol, _ := v.sideMap(side).Get(price)
	return vol
}

// Levels returns up to limit (price, volume) pairs for side, best first.
// limit <= 0 means unlimited.
func (v *AggregatedDepthBook) Levels(side Side, limit int) []DepthEntry {
	m := v.sideMap(side)
	out := make([]DepthEntry, 0, m.Len())
	for it := m.Iterator(); it.Valid() && (limit <= 0 || len(out) < limit); it.Next() {
		out = append(out, DepthEntry{Price: it.Key(), Volume: it.Value()})
	}
	return out
}

// Best returns the best tracked price on side.
func (v *AggregatedDepthBook) Best(side Side) (int64, bool) {
	m := v.sideMap(side)
	it := m.Iterator()
	if !it.Valid() {
		return 0, false
	}
	return it.Key(), true
}

// ForwardingPublisher is a Publisher that applies events to an
// AggregatedDepthBook as they arrive, wiring the live book straight into
// the read model without an intervening queue. Unlike MemoryPublisher it
// does not keep a record of the events.
type ForwardingPublisher struct {
	View *AggregatedDepthBook
}

func NewForwardingPublisher(view *AggregatedDepthBook) *ForwardingPublisher {
	return &ForwardingPublisher{View: view}
}

func (p *ForwardingPublisher) Publish(events []BookEvent) {
	p.View.ApplyAll(events)
}
