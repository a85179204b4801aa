package dhan

import "strings"

const (
	historicalEndpoint = "/v2/charts/historical"
	intradayEndpoint   = "/v2/charts/intraday"
	marketFeedEndpoint = "/v2/marketfeed/quote"

	// Dhan caps intraday chart requests to this many calendar days.
	maxIntradayWindowDays = 5
)

// timeframeMap translates platform interval tokens to Dhan chart
// resolutions. Minute intervals map to the minute count, daily to "D".
var timeframeMap = map[string]string{
	"1m":  "1",
	"5m":  "5",
	"15m": "15",
	"25m": "25",
	"1h":  "60",
	"D":   "D",
}

// supportedIntervals lists the timeframeMap keys in a stable order for
// error messages.
var supportedIntervals = []string{"1m", "5m", "15m", "25m", "1h", "D"}

// exchangeSegmentMap translates platform exchange codes to Dhan chart
// exchange segments.
var exchangeSegmentMap = map[string]string{
	"NSE": "NSE_EQ",
	"BSE": "BSE_EQ",
	"NFO": "NSE_FNO",
	"MCX": "MCX_COMM",
}

// indexSymbols are the index families whose NFO futures use the index
// future instrument code.
var indexSymbols = []string{"NIFTY", "BANKNIFTY", "FINNIFTY", "MIDCPNIFTY"}

// instrumentMap gives the instrument code for cash and commodity
// exchanges.
var instrumentMap = map[string]string{
	"NSE": "EQUITY",
	"BSE": "EQUITY",
	"MCX": "FUTCOM",
}

// instrumentType derives Dhan's instrument code from exchange and
// symbol. Unknown exchanges fall back to EQUITY here even though the
// history path rejects them earlier; the two checks are deliberately
// not unified.
func instrumentType(exchange, symbol string) string {
	if exchange == "NFO" {
		for _, index := range indexSymbols {
			if strings.Contains(symbol, index) {
				return "FUTIDX"
			}
		}
		return "FUTSTK"
	}
	if inst, ok := instrumentMap[exchange]; ok {
		return inst
	}
	return "EQUITY"
}

// TokenResolver maps a platform symbol and exchange to the broker's
// numeric security ID. Resolution is backed by the platform's symbol
// database; the adapter only consumes it.
type TokenResolver interface {
	SecurityID(symbol, exchange string) (int64, bool)
}

// FeedSegmentMapper maps a platform exchange code to the segment key
// used in marketfeed request and response bodies.
type FeedSegmentMapper interface {
	FeedSegment(exchange string) (string, bool)
}

// staticFeedSegments is the default FeedSegmentMapper.
type staticFeedSegments struct{}

var feedSegmentMap = map[string]string{
	"NSE": "NSE_EQ",
	"BSE": "BSE_EQ",
	"NFO": "NSE_FNO",
	"BFO": "BSE_FNO",
	"MCX": "MCX_COMM",
	"CDS": "NSE_CURRENCY",
}

func (staticFeedSegments) FeedSegment(exchange string) (string, bool) {
	segment, ok := feedSegmentMap[exchange]
	return segment, ok
}

// DefaultFeedSegments returns the built-in exchange to marketfeed
// segment mapping.
func DefaultFeedSegments() FeedSegmentMapper {
	return staticFeedSegments{}
}
