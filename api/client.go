// Package api is the REST client of the league backend.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bothellselect/select-client/otel"
	"github.com/bothellselect/select-client/otel/metrics"
	"github.com/bothellselect/select-client/utils"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

const DefaultTimeout = 15 * time.Second

// TokenSource returns the bearer token for the next call, or "" for anonymous calls.
type TokenSource func(ctx context.Context) (string, error)

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	ServiceName string
}

type Client struct {
	http        *resty.Client
	baseURL     string
	serviceName string
	tokens      TokenSource
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "select-client"
	}

	httpClient := otel.NewTracedRestyClient(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	return &Client{
		http:        httpClient,
		baseURL:     cfg.BaseURL,
		serviceName: cfg.ServiceName,
	}
}

// WithTokenSource returns a copy of c authenticating with tokens. The copies share
// the underlying connection pool.
func (c *Client) WithTokenSource(tokens TokenSource) *Client {
	clone := *c
	clone.tokens = tokens
	return &clone
}

type call struct {
	operation string
	method    string
	path      string
	query     map[string]string
	body      interface{}
	// anonymous calls skip the token source.
	anonymous bool
}

func (c *Client) do(ctx context.Context, in call) ([]byte, error) {
	ctx, finish := otel.StartHTTPSpan(ctx, c.serviceName, in.operation, in.method, c.baseURL, in.path)
	start := time.Now()

	statusCode, body, err := c.execute(ctx, in)

	finish(statusCode, err)
	metrics.RecordBackendCall(ctx, in.operation, statusCode, time.Since(start), err == nil)
	return body, err
}

func (c *Client) execute(ctx context.Context, in call) (int, []byte, error) {
	req := c.http.R().SetContext(ctx)

	if !in.anonymous && c.tokens != nil {
		token, err := c.tokens(ctx)
		if err != nil {
			return 0, nil, fmt.Errorf("read token: %w", err)
		}
		if token != "" {
			req.SetAuthToken(token)
		}
	}
	if len(in.query) > 0 {
		req.SetQueryParams(in.query)
	}
	if in.body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(in.body)
	}

	resp, err := req.Execute(in.method, in.path)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", in.method, in.path, err)
	}
	if resp.IsError() {
		return resp.StatusCode(), resp.Body(), newError(resp.StatusCode(), resp.Body())
	}
	return resp.StatusCode(), resp.Body(), nil
}

func (c *Client) get(ctx context.Context, operation, path string, query map[string]string, out interface{}) error {
	body, err := c.do(ctx, call{operation: operation, method: http.MethodGet, path: path, query: query})
	if err != nil {
		return err
	}
	return decode(body, out)
}

func (c *Client) send(ctx context.Context, operation, method, path string, in, out interface{}) error {
	body, err := c.do(ctx, call{operation: operation, method: method, path: path, body: in})
	if err != nil {
		return err
	}
	return decode(body, out)
}

func decode(body []byte, out interface{}) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := utils.BytesToStruct(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeList accepts a bare JSON array or one wrapped in a {"data": [...]} envelope.
func decodeList(body []byte, out interface{}) error {
	result := gjson.ParseBytes(body)
	if !result.IsArray() {
		result = result.Get("data")
	}
	if !result.IsArray() {
		return fmt.Errorf("decode response: expected a list")
	}
	return decode([]byte(result.Raw), out)
}

func (c *Client) getList(ctx context.Context, operation, path string, query map[string]string, out interface{}) error {
	body, err := c.do(ctx, call{operation: operation, method: http.MethodGet, path: path, query: query})
	if err != nil {
		return err
	}
	return decodeList(body, out)
}
