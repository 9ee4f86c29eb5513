package match

// syntheticTakerFloor separates ids the book invents for market-order
// takers (which never rest and never enter the index) from caller-issued
// order ids. Market orders carry no id across the external interface
// (§6); the book still needs something to stamp into Trade.TakerOrderID,
// so it counts up from here rather than from zero to make a
// collision with a real resting order id astronomically unlikely without
// having to validate every caller id against a reserved range.
const syntheticTakerFloor = uint64(1) << 63

// OrderBook is a price-time priority limit order book for a single
// instrument. It is a synchronous, single-threaded data structure: every
// exported method runs to completion before returning, there are no
// internal goroutines, channels, or suspension points, and it is not
// safe for concurrent mutation (§5). Callers needing multi-symbol
// parallelism should shard by symbol — see Market.
type OrderBook struct {
	symbol string
	bids   *ladder
	asks   *ladder
	index  map[uint64]*Order

	tradeSeq       uint64
	eventSeq       uint64
	syntheticTaker uint64

	pub            Publisher
	tradeBufferCap int
}

// NewOrderBook creates an empty book for symbol.
func NewOrderBook(symbol string, opts ...Option) *OrderBook {
	b := &OrderBook{
		symbol:         symbol,
		bids:           newBidLadder(),
		asks:           newAskLadder(),
		index:          make(map[uint64]*Order),
		pub:            DiscardPublisher{},
		tradeBufferCap: defaultTradeBufferCap,
		syntheticTaker: syntheticTakerFloor,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *OrderBook) ladderFor(side Side) *ladder {
	if side == Buy {
		return b.bids
	}
	return b.asks
}

func (b *OrderBook) oppositeLadder(side Side) *ladder {
	if side == Buy {
		return b.asks
	}
	return b.bids
}

func (b *OrderBook) nextTradeSeq() uint64 {
	b.tradeSeq++
	return b.tradeSeq
}

func (b *OrderBook) nextEventSeq() uint64 {
	b.eventSeq++
	return b.eventSeq
}

func (b *OrderBook) nextSyntheticTakerID() uint64 {
	b.syntheticTaker++
	return b.syntheticTaker
}

func (b *OrderBook) emitOpen(o *Order) {
	b.pub.Publish([]BookEvent{{
		Seq: b.nextEventSeq(), Type: EventOpen, Side: o.Side,
		Price: o.Price, Volume: o.Remaining(),
	}})
}

func (b *OrderBook) emitCancel(o *Order) {
	b.pub.Publish([]BookEvent{{
		Seq: b.nextEventSeq(), Type: EventCancel, Side: o.Side,
		Price: o.Price, Volume: o.Remaining(),
	}})
}

func (b *OrderBook) emitMatch(makerSide Side, price int64, volume uint64) {
	b.pub.Publish([]BookEvent{{
		Seq: b.nextEventSeq(), Type: EventMatch, Side: makerSide,
		Price: price, Volume: volume,
	}})
}

// AddLimitOrder inserts a non-marketable limit order at its price without
// checking whether it would actually cross the book. Pre: order.ID is not
// already resting, order.Filled == 0, order.Volume > 0. A duplicate id is
// a programmer error (§7) and aborts the process; callers that cannot
// guarantee non-marketability must use ProcessLimitOrder instead.
func (b *OrderBook) AddLimitOrder(o *Order) {
	if o.Filled != 0 {
		panic("match: AddLimitOrder called with a partially filled order")
	}
	if o.Volume == 0 {
		panic("match: AddLimitOrder called with zero volume")
	}
	b.rest(o)
}

// rest inserts o into its ladder and index and emits an open event. Unlike
// AddLimitOrder it does not require o.Filled == 0, since it is also the
// path a partially-filled ProcessLimitOrder residual takes to start
// resting; only the duplicate-id check, which is an invariant regardless
// of fill state, applies here.
func (b *OrderBook) rest(o *Order) {
	if _, exists := b.index[o.ID]; exists {
		panic("match: duplicate order id")
	}
	b.ladderFor(o.Side).insert(o)
	b.index[o.ID] = o
	b.emitOpen(o)
}

// ProcessLimitOrder handles a limit order that may be marketable: it
// walks the opposite ladder while the price crosses and volume remains,
// then rests any unfilled remainder. Returns the trades produced, in
// match order; if the order is fully filled, nothing rests.
func (b *OrderBook) ProcessLimitOrder(o *Order) []Trade {
	if o.Filled != 0 {
		panic("match: ProcessLimitOrder called with a partially filled order")
	}
	if o.Volume == 0 {
		panic("match: ProcessLimitOrder called with zero volume")
	}
	if _, exists := b.index[o.ID]; exists {
		panic("match: duplicate order id in ProcessLimitOrder")
	}

	opp := b.oppositeLadder(o.Side)
	trades := b.walk(o, opp, func(makerPrice int64) bool {
		if o.Side == Buy {
			return makerPrice <= o.Price
		}
		return makerPrice >= o.Price
	})

	if o.Remaining() > 0 {
		b.rest(o)
	}
	return trades
}

// ProcessMarketOrder consumes up to volume shares from the opposite book
// ignoring price. A zero volume is a no-op. If liquidity runs out before
// volume is exhausted, the walk stops and the remainder is discarded —
// market orders never rest.
func (b *OrderBook) ProcessMarketOrder(takerAgentID uint64, side Side, volume uint64) []Trade {
	if volume == 0 {
		return nil
	}

	taker := &Order{
		ID:      b.nextSyntheticTakerID(),
		AgentID: takerAgentID,
		Symbol:  b.symbol,
		Side:    side,
		Volume:  volume,
	}

	opp := b.oppositeLadder(side)
	return b.walk(taker, opp, nil)
}

// walk drains opp (the opposite side from taker) into taker, best price
// first and FIFO within a price, until taker is filled, opp runs dry, or
// priceOK rejects the next level (priceOK == nil means "always cross",
// used by market orders). It mutates opp's levels and the book's index
// in place and returns the trades produced, in match order.
func (b *OrderBook) walk(taker *Order, opp *ladder, priceOK func(makerPrice int64) bool) []Trade {
	trades := make([]Trade, 0, b.tradeBufferCap)

	for taker.Remaining() > 0 {
		level := opp.bestLevel()
		if level == nil {
			break
		}
		if priceOK != nil && !priceOK(level.price) {
			break
		}

		for level.head != nil && taker.Remaining() > 0 {
			maker := level.head
			tradeVolume := maker.Remaining()
			if taker.Remaining() < tradeVolume {
				tradeVolume = taker.Remaining()
			}

			trades = append(trades, newTrade(b.nextTradeSeq(), taker.ID, maker.ID, level.price, tradeVolume))
			level.applyFill(tradeVolume)
			maker.Filled += tradeVolume
			taker.Filled += tradeVolume
			b.emitMatch(maker.Side, level.price, tradeVolume)

			if maker.Filled > maker.Volume {
				panic("match: maker fill exceeded order volume")
			}
			if maker.Filled == maker.Volume {
				opp.detach(maker)
				delete(b.index, maker.ID)
			}
		}
	}

	return trades
}

// CancelOrder removes a resting order. It returns true iff an order with
// that id exists and agentID matches its owner; otherwise it returns
// false and the book is unchanged (§7 — absent id and owner mismatch are
// both benign, not errors).
func (b *OrderBook) CancelOrder(orderID uint64, agentID uint64) bool {
	o, ok := b.index[orderID]
	if !ok {
		return false
	}
	if o.AgentID != agentID {
		return false
	}

	b.ladderFor(o.Side).detach(o)
	delete(b.index, orderID)
	b.emitCancel(o)
	return true
}

// BestBid returns the top bid price, if any.
func (b *OrderBook) BestBid() (int64, bool) {
	return b.bids.bestPrice()
}

// BestAsk returns the top ask price, if any.
func (b *OrderBook) BestAsk() (int64, bool) {
	return b.asks.bestPrice()
}

// BidDepth returns up to limit (price, total volume) pairs from the bid
// side, best first. limit <= 0 means unlimited.
func (b *OrderBook) BidDepth(limit int) []DepthEntry {
	return b.bids.depth(limit)
}

// AskDepth returns up to limit (price, total volume) pairs from the ask
// side, best first. limit <= 0 means unlimited.
func (b *OrderBook) AskDepth(limit int) []DepthEntry {
	return b.asks.depth(limit)
}

// OrderCount returns the number of resting orders across both sides.
func (b *OrderBook) OrderCount() int {
	return len(b.index)
}

// Order looks up a resting order by id without mutating the book. The
// returned pointer aliases book state and must not be mutated by callers.
func (b *OrderBook) Order(orderID uint64) (*Order, bool) {
	o, ok := b.index[orderID]
	return o, ok
}
