package dhan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/navid-fn/dhanfeed/configs"
)

// Client performs authenticated requests against the Dhan data APIs
// and decodes the broker's failure envelope into typed errors. It does
// no retrying; requests are paced through a rate limiter because the
// broker endpoint is the rate-limited resource.
type Client struct {
	baseURL    string
	clientID   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Entry
}

// NewClient builds a Client from broker configuration.
func NewClient(cfg *configs.BrokerConfig, logger *logrus.Logger) *Client {
	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		clientID:   cfg.ClientID,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		logger:     logger.WithField("client", "dhan"),
	}
}

// envelope probes every response for the broker's failure shape before
// the endpoint-specific payload is decoded.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// call sends one request to endpoint with the given auth token, checks
// the failure envelope, and decodes the body into out when out is
// non-nil.
func (c *Client) call(ctx context.Context, method, endpoint, auth string, payload, out any) error {
	if c.clientID == "" {
		return &ConfigurationError{Reason: "could not extract client ID from auth token"}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	var body io.Reader
	var encoded []byte
	if payload != nil {
		var err error
		encoded, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request for %s: %w", endpoint, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("access-token", auth)
	req.Header.Set("client-id", c.clientID)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"method":   method,
		"payload":  string(encoded),
	}).Info("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response from %s: %w", endpoint, err)
	}

	c.logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"status":   resp.StatusCode,
		"bytes":    len(raw),
	}).Debug("received response")

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}

	if env.Status == "failed" {
		brokerErr := decodeBrokerError(env.Data)
		c.logger.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"code":     brokerErr.Code,
		}).Error(brokerErr.Message)
		return brokerErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response from %s: %w", endpoint, err)
		}
	}
	return nil
}

// decodeBrokerError extracts the error code and message from a failed
// envelope's data object. The broker keys the object by error code;
// the lowest code is taken when several are present.
func decodeBrokerError(data json.RawMessage) *BrokerAPIError {
	details := map[string]string{}
	_ = json.Unmarshal(data, &details)

	if len(details) == 0 {
		return newBrokerAPIError("unknown", "Unknown error")
	}

	codes := make([]string, 0, len(details))
	for code := range details {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	code := codes[0]
	message := details[code]
	if message == "" {
		message = "Unknown error"
	}
	return newBrokerAPIError(code, message)
}
