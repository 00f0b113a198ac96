package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"NavSentinel/internal/model"
)

// HTTPFetcher implements Fetcher with a single GET against the status endpoint.
type HTTPFetcher struct {
	URL      string
	NavPath  string
	FundPath string
	Client   *http.Client
}

// NewHTTPFetcher creates a fetcher with optional proxy support. navPath and
// fundPath are JSONPath expressions locating the NAV and the fund value.
func NewHTTPFetcher(rawURL, navPath, fundPath, proxyURL string) *HTTPFetcher {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		IdleConnTimeout:     90 * time.Second,
	}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &HTTPFetcher{
		URL:      rawURL,
		NavPath:  navPath,
		FundPath: fundPath,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *HTTPFetcher) Name() string { return f.URL }

func (f *HTTPFetcher) FetchStatus(ctx context.Context) (*model.Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, &FetchError{Code: CodeNetwork, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()
	log.Debug().Str("url", f.URL).Int("status", resp.StatusCode).Dur("took", time.Since(started)).Msg("status fetched")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &FetchError{
			Code: codeHTTPPrefix + strconv.Itoa(resp.StatusCode),
			Err:  fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body)),
		}
	}

	var doc any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, parseError(fmt.Errorf("decode status: %w", err))
	}

	nav, err := extract(doc, f.NavPath)
	if err != nil {
		return nil, parseError(err)
	}
	usd, err := extract(doc, f.FundPath)
	if err != nil {
		return nil, parseError(err)
	}
	return &model.Status{NavPerToken: nav, USDValue: usd}, nil
}

// extract evaluates path against doc and converts the result to a decimal.
func extract(doc any, path string) (decimal.Decimal, error) {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", path, err)
	}
	// a wildcard or slice path yields a list; keep the first match
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return decimal.Zero, fmt.Errorf("%s: no match", path)
		}
		v = list[0]
	}
	switch n := v.(type) {
	case json.Number, string:
		d, err := decimal.NewFromString(fmt.Sprint(n))
		if err != nil {
			return decimal.Zero, fmt.Errorf("%s: %w", path, err)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(n), nil
	default:
		return decimal.Zero, fmt.Errorf("%s: not a number: %v", path, v)
	}
}
