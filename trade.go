package match

import "github.com/rs/xid"

// Trade records a single fill produced by a matching walk. Price is
// always the maker's resting price (§4.1); Seq is contiguous and
// increasing across the lifetime of one OrderBook (invariant 6).
type Trade struct {
	Seq           uint64
	TakerOrderID  uint64
	MakerOrderID  uint64
	Price         int64
	Volume        uint64
	CorrelationID string // opaque xid, for downstream tracing only — never used for ordering
}

func newTrade(seq uint64, takerID, makerID uint64, price int64, volume uint64) Trade {
	return Trade{
		Seq:           seq,
		TakerOrderID:  takerID,
		MakerOrderID:  makerID,
		Price:         price,
		Volume:        volume,
		CorrelationID: xid.New().String(),
	}
}
