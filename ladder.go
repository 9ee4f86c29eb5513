package match

import "github.com/huandu/skiplist"

// DepthEntry is a read-only (price, total resting volume) pair exposed to
// observers walking a ladder from best to worst.
type DepthEntry struct {
	Price  int64
	Volume uint64
}

// ladder is one side (bids or asks) of an OrderBook: a price-ordered map
// from tick price to priceLevel (§4.2). It has no notion of order
// identity — that lives in OrderBook's index (§4.3) — it only owns the
// price -> level structure and the FIFO within each level.
//
// Best-of-book is the skiplist's Front() element, so best_bid/best_ask
// are O(1); creating or destroying a price level is O(log P).
type ladder struct {
	prices *skiplist.SkipList // price (int64) -> *priceLevel
}

// newBidLadder sorts prices descending: the best bid is the highest price.
func newBidLadder() *ladder {
	return &ladder{
		prices: skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
			a, _ := lhs.(int64)
			b, _ := rhs.(int64)
			switch {
			case a < b:
				return 1
			case a > b:
				return -1
			default:
				return 0
			}
		})),
	}
}

// newAskLadder sorts prices ascending: the best ask is the lowest price.
func newAskLadder() *ladder {
	return &ladder{
		prices: skiplist.New(skiplist.GreaterThanFunc(func(lhs, rhs any) int {
			a, _ := lhs.(int64)
			b, _ := rhs.(int64)
			switch {
			case a > b:
				return 1
			case a < b:
				return -1
			default:
				return 0
			}
		})),
	}
}

// bestLevel returns the top-of-book price level, or nil if the ladder is
// empty.
func (l *ladder) bestLevel() *priceLevel {
	el := l.prices.Front()
	if el == nil {
		return nil
	}
	level, _ := el.Value.(*priceLevel)
	return level
}

// bestPrice reports the top-of-book price.
func (l *ladder) bestPrice() (int64, bool) {
	level := l.bestLevel()
	if level == nil {
		return 0, false
	}
	return level.price, true
}

// insert appends order to the tail of the FIFO at order.Price, creating
// the level if this is the first resting order at that price.
func (l *ladder) insert(o *Order) {
	el := l.prices.Get(o.Price)
	var level *priceLevel
	if el == nil {
		level = acquirePriceLevel(o.Price)
		l.prices.Set(o.Price, level)
	} else {
		level, _ = el.Value.(*priceLevel)
	}
	level.pushBack(o)
}

// detach splices o out of its level, destroying the level if it becomes
// empty. Used both by cancel (arbitrary position) and by the matching
// walk (always the head, once fully filled). o.level must be non-nil.
func (l *ladder) detach(o *Order) {
	level := o.level
	level.removeOrder(o)
	if level.empty() {
		l.prices.Remove(level.price)
		releasePriceLevel(level)
	}
}

func (l *ladder) levelCount() int {
	return l.prices.Len()
}

// depth walks the ladder from best to worst, yielding at most limit
// (price, total volume) pairs. limit <= 0 means unlimited.
func (l *ladder) depth(limit int) []DepthEntry {
	out := make([]DepthEntry, 0, l.prices.Len())
	el := l.prices.Front()
	for el != nil && (limit <= 0 || len(out) < limit) {
		level, _ := el.Value.(*priceLevel)
		out = append(out, DepthEntry{Price: level.price, Volume: level.totalVolume})
		el = el.Next()
	}
	return out
}

// snapshotOrders returns every resting order across the ladder, ordered
// best-price-first and FIFO within a price, for OrderBook.Snapshot.
func (l *ladder) snapshotOrders() []Order {
	out := make([]Order, 0)
	el := l.prices.Front()
	for el != nil {
		level, _ := el.Value.(*priceLevel)
		for o := level.head; o != nil; o = o.next {
			out = append(out, Order{
				ID: o.ID, AgentID: o.AgentID, Symbol: o.Symbol,
				Side: o.Side, Price: o.Price, Volume: o.Volume, Filled: o.Filled,
			})
		}
		el = el.Next()
	}
	return out
}
