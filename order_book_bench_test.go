package match

import (
	"math/rand"
	"strconv"
	"testing"
)

// bookSizes, sweepVolumes and priceLevelCounts mirror the parameter matrix
// the original simulator's benchmark suite swept over, so throughput
// numbers here are comparable across the same axes: resting book depth,
// taker sweep size, and how many distinct price levels the resting
// liquidity is spread across.
var (
	bookSizes        = []int{100, 1_000, 10_000, 50_000}
	sweepVolumes     = []uint64{10, 100, 1_000, 25_000}
	priceLevelCounts = []int{1, 10, 100}
)

func buildRestingBook(b *testing.B, side Side, size, levels int) *OrderBook {
	book := NewOrderBook("BENCH")
	r := rand.New(rand.NewSource(42))
	for i := 0; i < size; i++ {
		price := int64(100 + r.Intn(levels))
		book.AddLimitOrder(&Order{
			ID: uint64(i + 1), AgentID: 1, Side: side,
			Price: price, Volume: uint64(r.Intn(20) + 1),
		})
	}
	return book
}

func BenchmarkProcessMarketOrder_Sweep(b *testing.B) {
	for _, size := range bookSizes {
		for _, levels := range priceLevelCounts {
			for _, volume := range sweepVolumes {
				b.Run(benchName(size, levels, volume), func(b *testing.B) {
					for i := 0; i < b.N; i++ {
						b.StopTimer()
						book := buildRestingBook(b, Sell, size, levels)
						b.StartTimer()
						book.ProcessMarketOrder(999, Buy, volume)
					}
				})
			}
		}
	}
}

func BenchmarkAddLimitOrder(b *testing.B) {
	book := NewOrderBook("BENCH")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		book.AddLimitOrder(&Order{
			ID: uint64(i + 1), AgentID: 1, Side: Buy,
			Price: int64(100 + i%50), Volume: 10,
		})
	}
}

func BenchmarkCancelOrder(b *testing.B) {
	book := NewOrderBook("BENCH")
	ids := make([]uint64, b.N)
	for i := 0; i < b.N; i++ {
		id := uint64(i + 1)
		ids[i] = id
		book.AddLimitOrder(&Order{ID: id, AgentID: 1, Side: Buy, Price: int64(100 + i%50), Volume: 10})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		book.CancelOrder(ids[i], 1)
	}
}

func benchName(size, levels int, volume uint64) string {
	return "size=" + strconv.Itoa(size) + "/levels=" + strconv.Itoa(levels) + "/volume=" + strconv.FormatUint(volume, 10)
}
