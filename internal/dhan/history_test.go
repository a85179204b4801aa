package dhan

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navid-fn/dhanfeed/internal/models"
)

func TestGetHistoryUnsupportedInterval(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("broker should not be contacted")
	})

	_, err := adapter.GetHistory(context.Background(), "RELIANCE", "NSE", "3m", "2025-01-06", "2025-01-10")

	var intervalErr *UnsupportedIntervalError
	require.ErrorAs(t, err, &intervalErr)
	assert.Contains(t, err.Error(), "1m, 5m, 15m, 25m, 1h, D")
}

func TestGetHistoryWeekendOnlyWindow(t *testing.T) {
	requests := 0
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	// Saturday to Sunday collapses to an inverted range.
	candles, err := adapter.GetHistory(context.Background(), "RELIANCE", "NSE", "D", "2025-01-04", "2025-01-05")

	require.NoError(t, err)
	require.NotNil(t, candles)
	assert.Empty(t, candles)
	assert.Zero(t, requests, "no broker request for a non-trading window")
}

func TestGetHistoryUnknownSymbol(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := adapter.GetHistory(context.Background(), "NOSUCH", "NSE", "D", "2025-01-06", "2025-01-10")

	var symErr *SymbolResolutionError
	require.ErrorAs(t, err, &symErr)
}

func TestGetHistoryUnsupportedExchange(t *testing.T) {
	adapter := NewAdapter(
		newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}),
		staticTokens{"NYSE:AAPL": 1},
		nil, "token", testLogger(),
	)

	_, err := adapter.GetHistory(context.Background(), "AAPL", "NYSE", "D", "2025-01-06", "2025-01-10")

	var exchErr *UnsupportedExchangeError
	require.ErrorAs(t, err, &exchErr)
}

func TestGetHistoryDailyEquity(t *testing.T) {
	var gotRequest chartRequest
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, historicalEndpoint, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		w.Write([]byte(`{
			"timestamp": [1736152200, 1736238600],
			"open": [1200.5, 1210.0],
			"high": [1225.0, 1222.5],
			"low": [1195.0, 1201.0],
			"close": [1210.0, 1215.5],
			"volume": [540000, 620000]
		}`))
	})

	candles, err := adapter.GetHistory(context.Background(), "RELIANCE", "NSE", "D", "2025-01-06", "2025-01-10")
	require.NoError(t, err)

	assert.Equal(t, "11536", gotRequest.SecurityID)
	assert.Equal(t, "NSE_EQ", gotRequest.ExchangeSegment)
	assert.Equal(t, "EQUITY", gotRequest.Instrument)
	assert.Empty(t, gotRequest.Interval, "daily requests carry no interval")
	require.NotNil(t, gotRequest.ExpiryCode, "equities carry expiryCode 0")
	assert.Equal(t, 0, *gotRequest.ExpiryCode)
	assert.Equal(t, "2025-01-06", gotRequest.FromDate)
	assert.Equal(t, "2025-01-11", gotRequest.ToDate, "end bound extended one day")

	require.Len(t, candles, 2)
	assert.Equal(t, int64(1736152200+19800), candles[0].Timestamp, "timestamps shifted to IST")
	assert.Equal(t, 1200.5, candles[0].Open)
	assert.Equal(t, int64(540000), candles[0].Volume)
}

func TestGetHistoryDailyIndexFutureOmitsExpiryCode(t *testing.T) {
	var gotRequest chartRequest
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		w.Write([]byte(`{"timestamp":[],"open":[],"high":[],"low":[],"close":[],"volume":[]}`))
	})

	_, err := adapter.GetHistory(context.Background(), "NIFTY25JANFUT", "NFO", "D", "2025-01-06", "2025-01-10")
	require.NoError(t, err)

	assert.Equal(t, "NSE_FNO", gotRequest.ExchangeSegment)
	assert.Equal(t, "FUTIDX", gotRequest.Instrument)
	assert.Nil(t, gotRequest.ExpiryCode)
}

func TestGetHistoryIntradayChunksAndMerge(t *testing.T) {
	// 2025-03-03 (Mon) through 2025-03-14 (Fri) spans 11 days: three
	// 5/5/1-day windows. Responses overlap at chunk boundaries and
	// arrive unsorted; the merge must sort and drop duplicates.
	bodies := []string{
		`{"timestamp":[2000,1000],"open":[2,1],"high":[2,1],"low":[2,1],"close":[2,1],"volume":[20,10]}`,
		`{"timestamp":[2000,3000],"open":[2,3],"high":[2,3],"low":[2,3],"close":[2,3],"volume":[20,30]}`,
		`{"timestamp":[4000],"open":[4],"high":[4],"low":[4],"close":[4],"volume":[40]}`,
	}
	var gotRequests []chartRequest
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, intradayEndpoint, r.URL.Path)
		var request chartRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		gotRequests = append(gotRequests, request)
		w.Write([]byte(bodies[len(gotRequests)-1]))
	})

	candles, err := adapter.GetHistory(context.Background(), "RELIANCE", "NSE", "5m", "2025-03-03", "2025-03-14")
	require.NoError(t, err)

	require.Len(t, gotRequests, 3)
	assert.Equal(t, "5", gotRequests[0].Interval)
	assert.Equal(t, "2025-03-03", gotRequests[0].FromDate)
	assert.Equal(t, "2025-03-09", gotRequests[0].ToDate)
	assert.Equal(t, "2025-03-08", gotRequests[1].FromDate)
	assert.Equal(t, "2025-03-13", gotRequests[2].FromDate)
	assert.Equal(t, "2025-03-15", gotRequests[2].ToDate)

	require.Len(t, candles, 4)
	var prev int64
	for i, candle := range candles {
		if i > 0 {
			assert.Greater(t, candle.Timestamp, prev, "timestamps strictly ascending")
		}
		prev = candle.Timestamp
	}
	assert.Equal(t, int64(1000+19800), candles[0].Timestamp)
	assert.Equal(t, int64(4000+19800), candles[3].Timestamp)
}

func TestGetHistoryIntradayPartialFailure(t *testing.T) {
	requests := 0
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 2 {
			w.Write([]byte(`{"status":"failed","data":{"905":"server busy"}}`))
			return
		}
		w.Write([]byte(`{"timestamp":[1000],"open":[1],"high":[1],"low":[1],"close":[1],"volume":[10]}`))
	})

	candles, err := adapter.GetHistory(context.Background(), "RELIANCE", "NSE", "5m", "2025-03-03", "2025-03-14")

	require.NoError(t, err, "one failed chunk must not fail the call")
	assert.Equal(t, 3, requests)
	assert.Len(t, candles, 1, "duplicate candles from surviving chunks collapse")
}

func TestGetHistoryIntradayAllChunksFail(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"failed","data":{"905":"server busy"}}`))
	})

	_, err := adapter.GetHistory(context.Background(), "RELIANCE", "NSE", "5m", "2025-03-03", "2025-03-14")

	require.Error(t, err)
	var brokerErr *BrokerAPIError
	assert.ErrorAs(t, err, &brokerErr)
}

func TestGetHistoryEmptyResponseYieldsEmptySeries(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	candles, err := adapter.GetHistory(context.Background(), "RELIANCE", "NSE", "D", "2025-01-06", "2025-01-10")

	require.NoError(t, err)
	require.NotNil(t, candles)
	assert.Empty(t, candles)
	assert.Equal(t, []string{"timestamp", "open", "high", "low", "close", "volume"}, models.CandleColumns)
}
