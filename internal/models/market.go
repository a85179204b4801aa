// Package models defines the normalized market data shapes handed back
// to the platform. Broker wire formats live next to the client that
// decodes them; everything here is broker-agnostic.
package models

// CandleColumns is the fixed column set of a historical series.
// An empty series still declares these columns.
var CandleColumns = []string{"timestamp", "open", "high", "low", "close", "volume"}

// Candle is a single OHLCV bar. Timestamp is epoch seconds in IST.
type Candle struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
}

// Quote is a single-symbol snapshot. All numeric fields default to zero
// when the broker supplies no data. Error is set only when a market data
// subscription failure was converted into an empty quote.
type Quote struct {
	LTP       float64 `json:"ltp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Volume    int64   `json:"volume"`
	Bid       float64 `json:"bid"`
	Ask       float64 `json:"ask"`
	PrevClose float64 `json:"prev_close"`
	Error     string  `json:"error,omitempty"`
}

// DepthLevel is one price level of the order book.
type DepthLevel struct {
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

// DepthLevels is the number of levels per side the platform renders.
const DepthLevels = 5

// Depth is an order book snapshot. Bids and Asks always hold exactly
// DepthLevels entries, best price first, zero-padded when the broker
// returns fewer. TotalBuyQty and TotalSellQty are sums over the returned
// levels, never the broker's own aggregates.
type Depth struct {
	Bids         []DepthLevel `json:"bids"`
	Asks         []DepthLevel `json:"asks"`
	LTP          float64      `json:"ltp"`
	LTQ          int64        `json:"ltq"`
	Volume       int64        `json:"volume"`
	Open         float64      `json:"open"`
	High         float64      `json:"high"`
	Low          float64      `json:"low"`
	PrevClose    float64      `json:"prev_close"`
	OI           int64        `json:"oi"`
	TotalBuyQty  int64        `json:"totalbuyqty"`
	TotalSellQty int64        `json:"totalsellqty"`
	Error        string       `json:"error,omitempty"`
}

// EmptyDepth returns a Depth with both sides padded to DepthLevels
// zero levels.
func EmptyDepth() Depth {
	return Depth{
		Bids: make([]DepthLevel, DepthLevels),
		Asks: make([]DepthLevel, DepthLevels),
	}
}
