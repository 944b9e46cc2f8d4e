package journal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"martinotron/internal/components/assert"
	"martinotron/internal/components/telemetry"
	"martinotron/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

var ErrFetchFailed = errors.New("fetch failed")

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type FetcherConfig struct {
	UserAgent      string `json:"user_agent"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	// DelayMillis is the minimum time between two requests.
	DelayMillis      int  `json:"delay_millis"`
	CloudflareBypass bool `json:"cloudflare_bypass"`
	// DumpDir, when set, receives a copy of every downloaded page.
	DumpDir string `json:"dump_dir"`
}

func (c FetcherConfig) withDefaults() FetcherConfig {
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	if c.DelayMillis <= 0 {
		c.DelayMillis = 250
	}
	return c
}

// Fetcher downloads article pages, one request at a time per delay window
// across every goroutine using it. Requests are never retried.
type Fetcher struct {
	http *resty.Client
}

func NewFetcher(config FetcherConfig, tel telemetry.API) Fetcher {
	assert.NotNil(tel)
	config = config.withDefaults()
	assert.NotEmptyStr(config.UserAgent)

	client := resty.New()
	if config.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	client.SetHeader("user-agent", config.UserAgent)
	client.SetTimeout(time.Duration(config.TimeoutSeconds) * time.Second)

	// burst of 1 so that consecutive requests are always spaced by the delay
	rateLimiter := rate.NewLimiter(rate.Every(time.Duration(config.DelayMillis)*time.Millisecond), 1)
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(client, tel)
	if config.DumpDir != "" {
		restyutil.DumpResponses(client, restyutil.NewFilesystemOutput(config.DumpDir))
	}

	return Fetcher{http: client}
}

// Fetch downloads and parses the page at url, any status other than 200 is an
// ErrFetchFailed.
func (f Fetcher) Fetch(ctx context.Context, url string) (*html.Node, error) {
	res, err := f.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetchFailed, url, err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %d", ErrFetchFailed, url, res.StatusCode())
	}

	doc, err := html.Parse(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: parse: %w", ErrFetchFailed, url, err)
	}
	return doc, nil
}
