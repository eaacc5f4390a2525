package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/schoolchat/internal/client/gateway"
)

// getRecord reads key and decodes its JSON value into dst. A missing key is
// normal and reported through the boolean, not an error.
func getRecord[T any](ctx context.Context, gw gateway.Gateway, key string, shared bool, dst *T) (bool, error) {
	raw, found, err := gw.Get(ctx, key, shared)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

// putRecord encodes v as JSON and overwrites key.
func putRecord(ctx context.Context, gw gateway.Gateway, key string, shared bool, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return gw.Set(ctx, key, string(data), shared)
}
