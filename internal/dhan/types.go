// Wire schemas for the Dhan v2 data APIs.
//
// Chart endpoints return parallel arrays:
//
//	{
//	    "open": [412.5, ...],
//	    "high": [413.0, ...],
//	    "low": [411.9, ...],
//	    "close": [412.1, ...],
//	    "volume": [102400, ...],
//	    "timestamp": [1713158100, ...]
//	}
//
// The marketfeed endpoint nests per-security objects under
// data[segment][securityId]:
//
//	{
//	    "status": "success",
//	    "data": {
//	        "NSE_EQ": {
//	            "11536": {
//	                "last_price": 4520.0,
//	                "ohlc": {"open": ..., "high": ..., "low": ..., "close": ...},
//	                "depth": {"buy": [{"price": ..., "quantity": ...}], "sell": [...]},
//	                ...
//	            } } } }
package dhan

// chartRequest is the body for /v2/charts/historical and
// /v2/charts/intraday. Interval is set only for intraday requests;
// ExpiryCode is set (to 0) only for equity daily requests.
type chartRequest struct {
	SecurityID      string `json:"securityId"`
	ExchangeSegment string `json:"exchangeSegment"`
	Instrument      string `json:"instrument"`
	Interval        string `json:"interval,omitempty"`
	ExpiryCode      *int   `json:"expiryCode,omitempty"`
	FromDate        string `json:"fromDate"`
	ToDate          string `json:"toDate"`
}

// chartResponse holds the parallel candle arrays. Arrays may be ragged
// when the broker drops fields; consumers index defensively.
type chartResponse struct {
	Timestamp []float64 `json:"timestamp"`
	Open      []float64 `json:"open"`
	High      []float64 `json:"high"`
	Low       []float64 `json:"low"`
	Close     []float64 `json:"close"`
	Volume    []float64 `json:"volume"`
}

// quoteRequest maps a marketfeed segment key to the security IDs
// requested from it.
type quoteRequest map[string][]int64

type quoteResponse struct {
	Status string                              `json:"status"`
	Data   map[string]map[string]securityQuote `json:"data"`
}

type securityQuote struct {
	LastPrice    float64   `json:"last_price"`
	LastQuantity int64     `json:"last_quantity"`
	Volume       int64     `json:"volume"`
	OI           int64     `json:"oi"`
	OHLC         quoteOHLC `json:"ohlc"`
	Depth        feedDepth `json:"depth"`
}

type quoteOHLC struct {
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

type feedDepth struct {
	Buy  []feedDepthLevel `json:"buy"`
	Sell []feedDepthLevel `json:"sell"`
}

type feedDepthLevel struct {
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}
