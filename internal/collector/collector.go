package collector

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"NavSentinel/internal/model"
)

// MockFetcher replays a fixed sequence of results for development and testing.
// The last entry repeats once the sequence is exhausted.
type MockFetcher struct {
	Results []MockResult
	calls   int
}

// MockResult is one scripted fetch outcome.
type MockResult struct {
	Nav string
	USD string
	Err error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchStatus(_ context.Context) (*model.Status, error) {
	if len(m.Results) == 0 {
		return nil, &FetchError{Code: CodeNetwork, Err: fmt.Errorf("no mock results")}
	}
	i := m.calls
	if i >= len(m.Results) {
		i = len(m.Results) - 1
	}
	m.calls++
	r := m.Results[i]
	if r.Err != nil {
		return nil, r.Err
	}
	return &model.Status{
		NavPerToken: decimal.RequireFromString(r.Nav),
		USDValue:    decimal.RequireFromString(r.USD),
	}, nil
}

// Calls returns how many fetches were made.
func (m *MockFetcher) Calls() int { return m.calls }

// Collector runs one fetch per refresh cycle and sanity-checks the result.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Collect fetches the current status. A negative NAV or fund value is
// reported as a parse failure.
func (c *Collector) Collect(ctx context.Context) (*model.Status, error) {
	st, err := c.Fetcher.FetchStatus(ctx)
	if err != nil {
		return nil, err
	}
	if st.NavPerToken.IsNegative() || st.USDValue.IsNegative() {
		return nil, parseError(fmt.Errorf("negative value: nav=%s usd=%s", st.NavPerToken, st.USDValue))
	}
	log.Debug().Str("source", c.Fetcher.Name()).Str("nav", st.NavPerToken.String()).Str("usd", st.USDValue.String()).Msg("collected")
	return st, nil
}
