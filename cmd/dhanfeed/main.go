// dhanfeed fetches market data from Dhan and prints it as JSON.
//
// Usage:
//
//	dhanfeed -op history -symbol RELIANCE -exchange NSE -interval D -start 2025-01-01 -end 2025-01-31
//	dhanfeed -op quote -symbol RELIANCE -exchange NSE
//	dhanfeed -op depth -symbol RELIANCE -exchange NSE
//
// The access token is read from DHAN_ACCESS_TOKEN, the client ID from
// BROKER_API_KEY, and the scrip master path from SCRIP_MASTER_PATH.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/navid-fn/dhanfeed/configs"
	"github.com/navid-fn/dhanfeed/internal/dhan"
	"github.com/navid-fn/dhanfeed/internal/tokendb"
)

func main() {
	op := flag.String("op", "quote", "operation: history, quote or depth")
	symbol := flag.String("symbol", "", "trading symbol")
	exchange := flag.String("exchange", "NSE", "exchange code (NSE, BSE, NFO, MCX)")
	interval := flag.String("interval", "D", "candle interval (1m, 5m, 15m, 25m, 1h, D)")
	start := flag.String("start", "", "start date YYYY-MM-DD (history only)")
	end := flag.String("end", "", "end date YYYY-MM-DD (history only)")
	flag.Parse()

	appConfig := configs.AppLoad()
	logger := configs.NewLogger()

	if *symbol == "" {
		logger.Fatal("-symbol is required")
	}

	auth := os.Getenv("DHAN_ACCESS_TOKEN")
	if auth == "" {
		logger.Fatal("DHAN_ACCESS_TOKEN is not set")
	}

	tokens, err := tokendb.Load(appConfig.ScripMasterPath)
	if err != nil {
		logger.WithError(err).Fatal("failed to load scrip master")
	}
	logger.WithField("instruments", tokens.Len()).Info("scrip master loaded")

	client := dhan.NewClient(&appConfig.Broker, logger)
	adapter := dhan.NewAdapter(client, tokens, nil, auth, logger)

	ctx := context.Background()
	var result any
	switch *op {
	case "history":
		result, err = adapter.GetHistory(ctx, *symbol, *exchange, *interval, *start, *end)
	case "quote":
		result, err = adapter.GetQuotes(ctx, *symbol, *exchange)
	case "depth":
		result, err = adapter.GetDepth(ctx, *symbol, *exchange)
	default:
		logger.Fatalf("unknown operation %q", *op)
	}
	if err != nil {
		logger.WithError(err).Fatal("request failed")
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.WithError(err).Fatal("failed to encode result")
	}
	fmt.Println(string(encoded))
}
