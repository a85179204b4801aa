package dhan

import (
	"fmt"
	"strings"
)

// ConfigurationError reports missing or unusable client configuration.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "dhan: configuration error: " + e.Reason
}

// BrokerAPIError is a failure reported by the broker in its response
// envelope. Message is the human-readable text mapped from the broker
// error code.
type BrokerAPIError struct {
	Code    string
	Message string
}

func (e *BrokerAPIError) Error() string {
	return e.Message
}

// IsSubscriptionError reports whether the broker rejected the request
// for lack of a data API subscription. Quote and depth calls convert
// this case into an empty result instead of failing.
func (e *BrokerAPIError) IsSubscriptionError() bool {
	return strings.Contains(strings.ToLower(e.Message), "not subscribed")
}

// brokerErrorMessages maps known Dhan error codes to readable text.
var brokerErrorMessages = map[string]string{
	"806": "Data APIs not subscribed. Please subscribe to Dhan's market data service.",
	"810": "Authentication failed: Invalid client ID",
	"401": "Invalid or expired access token",
	"820": "Market data subscription required",
	"821": "Market data subscription required",
}

func newBrokerAPIError(code, message string) *BrokerAPIError {
	if msg, ok := brokerErrorMessages[code]; ok {
		return &BrokerAPIError{Code: code, Message: msg}
	}
	return &BrokerAPIError{
		Code:    code,
		Message: fmt.Sprintf("Dhan API error %s: %s", code, message),
	}
}

// UnsupportedIntervalError reports an interval token outside the
// timeframe table.
type UnsupportedIntervalError struct {
	Interval  string
	Supported []string
}

func (e *UnsupportedIntervalError) Error() string {
	return fmt.Sprintf("unsupported interval %q, supported intervals are: %s",
		e.Interval, strings.Join(e.Supported, ", "))
}

// UnsupportedExchangeError reports an exchange with no Dhan segment
// mapping.
type UnsupportedExchangeError struct {
	Exchange string
}

func (e *UnsupportedExchangeError) Error() string {
	return fmt.Sprintf("unsupported exchange: %s", e.Exchange)
}

// SymbolResolutionError reports a symbol the token resolver could not
// map to a Dhan security ID.
type SymbolResolutionError struct {
	Symbol   string
	Exchange string
}

func (e *SymbolResolutionError) Error() string {
	return fmt.Sprintf("could not find security ID for %s on %s", e.Symbol, e.Exchange)
}
