package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/schoolchat/internal/common"
)

// HTTPGateway talks to a storage gateway server over its record API:
//
//	GET /v1/records/<key>   -> 200 {"value":...,"shared":...} | 404
//	PUT /v1/records/<key>   <- {"value":...,"shared":...} -> 204
//
// No timeouts are applied here; callers control cancellation through ctx.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

type recordPayload struct {
	Value  string `json:"value"`
	Shared bool   `json:"shared"`
}

// NewHTTPGateway constructs a gateway client for the given base URL,
// e.g. "http://localhost:8090".
func NewHTTPGateway(baseURL string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

func (g *HTTPGateway) recordURL(key string) string {
	return g.baseURL + "/v1/records/" + url.PathEscape(key)
}

func (g *HTTPGateway) Get(ctx context.Context, key string, shared bool) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.recordURL(key), nil)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var p recordPayload
		if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
			return "", false, fmt.Errorf("%w: decoding record: %v", common.ErrStorageUnavailable, err)
		}
		return p.Value, true, nil
	case http.StatusNotFound:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("%w: unexpected status %d", common.ErrStorageUnavailable, resp.StatusCode)
	}
}

func (g *HTTPGateway) Set(ctx context.Context, key, value string, shared bool) error {
	body, err := json.Marshal(recordPayload{Value: value, Shared: shared})
	if err != nil {
		return fmt.Errorf("%w: encoding record: %v", common.ErrStorageUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, g.recordURL(key), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("%w: unexpected status %d", common.ErrStorageUnavailable, resp.StatusCode)
	}
	return nil
}
