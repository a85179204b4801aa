package dhan

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/navid-fn/dhanfeed/internal/models"
)

// GetQuotes fetches a snapshot quote for one symbol. A broker response
// with no data for the security yields an all-zero quote, and a market
// data subscription failure yields an all-zero quote with the error
// text attached; neither is treated as a failure because the platform
// still renders the quote panel. Any other error propagates.
func (a *Adapter) GetQuotes(ctx context.Context, symbol, exchange string) (models.Quote, error) {
	data, err := a.fetchSecurityQuote(ctx, symbol, exchange)
	if err != nil {
		var brokerErr *BrokerAPIError
		if errors.As(err, &brokerErr) && brokerErr.IsSubscriptionError() {
			a.logger.WithField("symbol", symbol).Error("market data subscription error")
			return models.Quote{Error: brokerErr.Message}, nil
		}
		return models.Quote{}, fmt.Errorf("fetch quotes for %s: %w", symbol, err)
	}
	if data == nil {
		return models.Quote{}, nil
	}

	quote := models.Quote{
		LTP:       data.LastPrice,
		Open:      data.OHLC.Open,
		High:      data.OHLC.High,
		Low:       data.OHLC.Low,
		Volume:    data.Volume,
		PrevClose: data.OHLC.Close,
	}
	if len(data.Depth.Buy) > 0 {
		quote.Bid = data.Depth.Buy[0].Price
	}
	if len(data.Depth.Sell) > 0 {
		quote.Ask = data.Depth.Sell[0].Price
	}
	return quote, nil
}

// GetDepth fetches the order book snapshot for one symbol. Both sides
// always hold exactly models.DepthLevels entries, zero-padded when the
// broker supplies fewer; aggregate buy/sell quantities are summed from
// the returned levels. No-data and subscription failures degrade the
// same way GetQuotes does.
func (a *Adapter) GetDepth(ctx context.Context, symbol, exchange string) (models.Depth, error) {
	data, err := a.fetchSecurityQuote(ctx, symbol, exchange)
	if err != nil {
		var brokerErr *BrokerAPIError
		if errors.As(err, &brokerErr) && brokerErr.IsSubscriptionError() {
			a.logger.WithField("symbol", symbol).Error("market data subscription error")
			depth := models.EmptyDepth()
			depth.Error = brokerErr.Message
			return depth, nil
		}
		return models.EmptyDepth(), fmt.Errorf("fetch depth for %s: %w", symbol, err)
	}
	if data == nil {
		return models.EmptyDepth(), nil
	}

	depth := models.Depth{
		Bids:      padLevels(data.Depth.Buy),
		Asks:      padLevels(data.Depth.Sell),
		LTP:       data.LastPrice,
		LTQ:       data.LastQuantity,
		Volume:    data.Volume,
		Open:      data.OHLC.Open,
		High:      data.OHLC.High,
		Low:       data.OHLC.Low,
		PrevClose: data.OHLC.Close,
		OI:        data.OI,
	}
	for _, level := range depth.Bids {
		depth.TotalBuyQty += level.Quantity
	}
	for _, level := range depth.Asks {
		depth.TotalSellQty += level.Quantity
	}
	return depth, nil
}

// fetchSecurityQuote resolves the symbol and requests it from the
// marketfeed endpoint. A nil result with nil error means the broker
// returned no data for the security.
func (a *Adapter) fetchSecurityQuote(ctx context.Context, symbol, exchange string) (*securityQuote, error) {
	securityID, ok := a.tokens.SecurityID(symbol, exchange)
	if !ok {
		return nil, &SymbolResolutionError{Symbol: symbol, Exchange: exchange}
	}

	segment, ok := a.segments.FeedSegment(exchange)
	if !ok {
		return nil, &UnsupportedExchangeError{Exchange: exchange}
	}

	payload := quoteRequest{segment: []int64{securityID}}

	var response quoteResponse
	if err := a.client.call(ctx, http.MethodPost, marketFeedEndpoint, a.auth, payload, &response); err != nil {
		return nil, err
	}

	data, ok := response.Data[segment][strconv.FormatInt(securityID, 10)]
	if !ok {
		return nil, nil
	}
	return &data, nil
}

// padLevels converts broker depth levels to the fixed-size normalized
// form, truncating extras and zero-padding shortfalls.
func padLevels(levels []feedDepthLevel) []models.DepthLevel {
	out := make([]models.DepthLevel, models.DepthLevels)
	for i := 0; i < models.DepthLevels && i < len(levels); i++ {
		out[i] = models.DepthLevel{
			Price:    levels[i].Price,
			Quantity: levels[i].Quantity,
		}
	}
	return out
}
