package dhan

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/navid-fn/dhanfeed/configs"
)

const testClientID = "client-1001"

// staticTokens is a TokenResolver backed by a fixed map keyed
// "EXCHANGE:SYMBOL".
type staticTokens map[string]int64

func (s staticTokens) SecurityID(symbol, exchange string) (int64, bool) {
	id, ok := s[exchange+":"+symbol]
	return id, ok
}

func testTokens() staticTokens {
	return staticTokens{
		"NSE:RELIANCE":      11536,
		"NFO:NIFTY25JANFUT": 49081,
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newTestClient points a Client at an httptest server standing in for
// the broker. The rate limiter is disabled so tests run unpaced.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&configs.BrokerConfig{
		BaseURL:               server.URL,
		ClientID:              testClientID,
		RequestTimeoutSeconds: 5,
	}, testLogger())
}

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()
	return NewAdapter(newTestClient(t, handler), testTokens(), nil, "token-abc", testLogger())
}
