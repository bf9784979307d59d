package polygon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	c "pxdata/api"
	m "pxdata/data/models"
)

// public
const (
	BaseUrlDefault = "https://api.polygon.io"
)

// private
const (
	defaultTimeout = time.Second * 30

	apiKey = "apiKey"

	maxBodyBytes    = 64 << 20
	maxExcerptBytes = 512
)

type PolygonClient struct {
	*c.Client
}

func GetClient(baseUrl, key string, timeout time.Duration) (*PolygonClient, error) {
	if baseUrl == "" {
		baseUrl = BaseUrlDefault
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client, err := c.ClientFactory(baseUrl, key, timeout)
	if err != nil {
		return nil, err
	}
	return &PolygonClient{client}, nil
}

type aggregatesResponse struct {
	Ticker       string        `json:"ticker"`
	Status       string        `json:"status"`
	RequestId    string        `json:"request_id"`
	ResultsCount *int          `json:"resultsCount"`
	Results      *[]m.PriceBar `json:"results"`
}

// GetAggregates issues one aggregates request for qs and returns the bars in
// source order. Zero bars is an empty series, not an error.
// https://polygon.io/docs/stocks/get_v2_aggs_ticker__stocksticker__range__multiplier___timespan___from___to
func (pc *PolygonClient) GetAggregates(ctx context.Context, qs m.QuerySet) (*m.PriceSeries, error) {
	if !m.IsPathSafeTicker(qs.Ticker) {
		return nil, fmt.Errorf("polygon: ticker %q is not a single path segment", qs.Ticker)
	}

	endpoint := pc.buildRequestPath(qs)

	response, err := pc.Client.Connection.Request(ctx, endpoint)
	if err != nil {
		return nil, &TransportError{Path: endpoint.Path, Err: redact(err)}
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(response.Body, maxExcerptBytes))
		return nil, &TransportError{
			Path:       endpoint.Path,
			StatusCode: response.StatusCode,
			Body:       strings.TrimSpace(string(excerpt)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Path: endpoint.Path, Err: redact(err)}
	}

	raw, err := parseAggregates(body)
	if err != nil {
		return nil, err
	}

	// the echoed ticker ends up in dump paths
	ticker := raw.Ticker
	if !m.IsPathSafeTicker(ticker) {
		ticker = qs.Ticker
	}

	bars := make([]m.PriceBar, 0)
	if raw.Results != nil {
		bars = *raw.Results
	}

	return &m.PriceSeries{
		Ticker: ticker,
		Query:  qs,
		Bars:   bars,
	}, nil
}

func (pc *PolygonClient) buildRequestPath(qs m.QuerySet) *url.URL {
	endpoint := &url.URL{}
	endpoint.Path = fmt.Sprintf("/v2/aggs/ticker/%s/range/%s/%s/%s/%s",
		qs.Ticker,
		strconv.Itoa(qs.Multiplier),
		qs.Timespan,
		qs.DateFrom,
		qs.DateTo,
	)

	query := endpoint.Query()
	query.Set(apiKey, pc.Client.ApiKey)
	endpoint.RawQuery = query.Encode()

	return endpoint
}

// parseAggregates requires the results array. Polygon leaves it out for an
// empty range, so an explicit resultsCount of 0 is accepted in its place.
func parseAggregates(body []byte) (*aggregatesResponse, error) {
	var raw aggregatesResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &DecodeError{Reason: "error unmarshaling aggregates response", Err: err}
	}

	if raw.Results == nil && (raw.ResultsCount == nil || *raw.ResultsCount != 0) {
		return nil, &DecodeError{Reason: "aggregates response is missing the results array"}
	}

	return &raw, nil
}
