// Package dhan adapts the platform's market data interface to the Dhan
// v2 REST API: historical candles, single-symbol quotes, and top-5
// market depth. Calls are stateless and synchronous; the only shared
// state is the read-only lookup tables in common.go, so an Adapter is
// safe for concurrent use.
package dhan

import (
	"github.com/sirupsen/logrus"
)

// Adapter is the Dhan market data adapter. The access token is handed
// in at construction; session management belongs to the caller.
type Adapter struct {
	client   *Client
	tokens   TokenResolver
	segments FeedSegmentMapper
	auth     string
	logger   *logrus.Entry
}

// NewAdapter wires an Adapter from its collaborators. A nil segments
// mapper falls back to the built-in table.
func NewAdapter(client *Client, tokens TokenResolver, segments FeedSegmentMapper, auth string, logger *logrus.Logger) *Adapter {
	if segments == nil {
		segments = DefaultFeedSegments()
	}
	return &Adapter{
		client:   client,
		tokens:   tokens,
		segments: segments,
		auth:     auth,
		logger:   logger.WithField("adapter", "dhan"),
	}
}
