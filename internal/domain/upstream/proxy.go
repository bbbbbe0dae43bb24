// Package upstream forwards resolved lookup URLs to the data service
// and classifies what comes back.
package upstream

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"keneviz-panel-go/internal/platform/config"
	"keneviz-panel-go/internal/platform/logging"
)

// Result is the outcome of one upstream fetch. Exactly one of JSON and
// Text carries the payload when OK is true.
type Result struct {
	// OK is false only for transport failures; any HTTP response,
	// whatever its status, is a result worth relaying.
	OK bool
	// StatusCode is the upstream status, or 502 when OK is false.
	StatusCode int
	// JSON holds the decoded body when it parsed as JSON.
	JSON interface{}
	// Text holds the raw body when it did not.
	Text string
	// Err describes the transport failure when OK is false.
	Err string
}

// Proxy fetches upstream lookup URLs with a bounded timeout.
type Proxy struct {
	client *resty.Client
	logger *logging.Logger
}

func NewProxy(cfg config.UpstreamConfig, logger *logging.Logger) *Proxy {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Proxy{
		client: resty.New().SetTimeout(timeout),
		logger: logger,
	}
}

// Fetch performs the upstream request and classifies the body. A body
// is JSON when the Content-Type says so or when it looks like a JSON
// document and parses; everything else is relayed as text.
func (p *Proxy) Fetch(ctx context.Context, url string) Result {
	resp, err := p.client.R().SetContext(ctx).Get(url)
	if err != nil {
		p.logger.Warn("upstream request failed: %v", err)
		return Result{OK: false, StatusCode: 502, Err: err.Error()}
	}

	body := resp.Body()
	result := Result{OK: true, StatusCode: resp.StatusCode()}

	contentType := strings.ToLower(resp.Header().Get("Content-Type"))
	trimmed := strings.TrimSpace(string(body))
	looksJSON := strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")

	if strings.Contains(contentType, "application/json") || looksJSON {
		var decoded interface{}
		if err := json.Unmarshal(body, &decoded); err == nil {
			result.JSON = decoded
			return result
		}
	}
	result.Text = string(body)
	return result
}
