package dhan

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/navid-fn/dhanfeed/internal/models"
)

// GetHistory fetches candles for a symbol between startDate and
// endDate (inclusive, YYYY-MM-DD, IST). Daily candles come from the
// historical endpoint in one request; sub-daily intervals are fetched
// from the intraday endpoint in 5-day windows. A failed intraday
// window is skipped so partial data is preferred over total failure.
// The returned series is sorted ascending with duplicate timestamps
// removed and is never nil.
func (a *Adapter) GetHistory(ctx context.Context, symbol, exchange, interval, startDate, endDate string) ([]models.Candle, error) {
	resolution, ok := timeframeMap[interval]
	if !ok {
		return nil, &UnsupportedIntervalError{Interval: interval, Supported: supportedIntervals}
	}

	start, err := parseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := parseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}

	start, end = adjustToTradingDays(start, end)
	if start.After(end) {
		a.logger.WithFields(logrus.Fields{
			"symbol": symbol,
			"start":  startDate,
			"end":    endDate,
		}).Info("requested range has no trading days")
		return []models.Candle{}, nil
	}

	securityID, ok := a.tokens.SecurityID(symbol, exchange)
	if !ok {
		return nil, &SymbolResolutionError{Symbol: symbol, Exchange: exchange}
	}

	segment, ok := exchangeSegmentMap[exchange]
	if !ok {
		return nil, &UnsupportedExchangeError{Exchange: exchange}
	}

	instrument := instrumentType(exchange, symbol)

	var candles []models.Candle
	if interval == "D" {
		candles, err = a.fetchDaily(ctx, securityID, segment, instrument, start, end)
	} else {
		candles, err = a.fetchIntraday(ctx, securityID, segment, instrument, resolution, start, end)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(candles, func(i, j int) bool {
		return candles[i].Timestamp < candles[j].Timestamp
	})
	deduped := candles[:0]
	for _, candle := range candles {
		if len(deduped) > 0 && deduped[len(deduped)-1].Timestamp == candle.Timestamp {
			continue
		}
		deduped = append(deduped, candle)
	}
	if deduped == nil {
		deduped = []models.Candle{}
	}
	return deduped, nil
}

// fetchDaily issues the single whole-range request to the historical
// endpoint. The end bound is extended by one day so the caller's end
// date is included.
func (a *Adapter) fetchDaily(ctx context.Context, securityID int64, segment, instrument string, start, end time.Time) ([]models.Candle, error) {
	request := chartRequest{
		SecurityID:      fmt.Sprintf("%d", securityID),
		ExchangeSegment: segment,
		Instrument:      instrument,
		FromDate:        toUTCDate(start),
		ToDate:          toUTCDate(end.AddDate(0, 0, 1)),
	}
	// Broker quirk: equities require an explicit zero expiry code.
	if instrument == "EQUITY" {
		zero := 0
		request.ExpiryCode = &zero
	}

	var response chartResponse
	if err := a.client.call(ctx, http.MethodPost, historicalEndpoint, a.auth, request, &response); err != nil {
		return nil, fmt.Errorf("fetch daily history: %w", err)
	}
	return appendCandles(nil, &response), nil
}

// fetchIntraday pages the range through the intraday endpoint in 5-day
// windows. Windows lying entirely on non-trading days are skipped
// without a request; a window whose request fails is logged and
// skipped. The call only fails when every attempted window failed and
// nothing was collected.
func (a *Adapter) fetchIntraday(ctx context.Context, securityID int64, segment, instrument, resolution string, start, end time.Time) ([]models.Candle, error) {
	candles := []models.Candle{}
	chunks := intradayChunks(start, end)

	var attempted, failed int
	var lastErr error
	for _, chunk := range chunks {
		if !isTradingDay(chunk.start) && !isTradingDay(chunk.end) {
			continue
		}

		request := chartRequest{
			SecurityID:      fmt.Sprintf("%d", securityID),
			ExchangeSegment: segment,
			Instrument:      instrument,
			Interval:        resolution,
			FromDate:        toUTCDate(chunk.start),
			ToDate:          toUTCDate(chunk.end.AddDate(0, 0, 1)),
		}

		attempted++
		var response chartResponse
		if err := a.client.call(ctx, http.MethodPost, intradayEndpoint, a.auth, request, &response); err != nil {
			a.logger.WithFields(logrus.Fields{
				"from":  chunk.start.Format(dateLayout),
				"to":    chunk.end.Format(dateLayout),
				"error": err,
			}).Warn("intraday chunk failed, skipping")
			failed++
			lastErr = err
			continue
		}
		candles = appendCandles(candles, &response)
	}

	if attempted > 0 && failed == attempted && len(candles) == 0 {
		return nil, fmt.Errorf("all %d intraday chunks failed: %w", failed, lastErr)
	}
	return candles, nil
}

// appendCandles zips a chart response's parallel arrays into candles,
// shifting timestamps into IST. Missing array entries read as zero.
func appendCandles(dst []models.Candle, response *chartResponse) []models.Candle {
	for i := range response.Timestamp {
		dst = append(dst, models.Candle{
			Timestamp: utcToISTEpoch(int64(response.Timestamp[i])),
			Open:      at(response.Open, i),
			High:      at(response.High, i),
			Low:       at(response.Low, i),
			Close:     at(response.Close, i),
			Volume:    int64(at(response.Volume, i)),
		})
	}
	return dst
}

func at(values []float64, i int) float64 {
	if i >= len(values) {
		return 0
	}
	return values[i]
}
