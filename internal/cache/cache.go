package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/saamdocs/docgen-service/pkg/logger"
	"github.com/saamdocs/docgen-service/pkg/metrics"
)

// Cache is a key/value store with per-entry TTL. Implementations must be safe
// for concurrent use; concurrent writes are last-writer-wins.
type Cache interface {
	// Get returns the stored value and whether the key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value that expires after ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes an entry. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every entry whose key starts with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

// Key builds a deterministic cache key from an operation name and its
// arguments. Map arguments are serialized with sorted keys so identical calls
// always produce identical keys.
func Key(op string, args ...any) string {
	parts := []string{op}
	for _, a := range args {
		parts = append(parts, serialize(a))
	}
	return strings.Join(parts, ":")
}

func serialize(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case map[string]string:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		kv := make([]string, 0, len(keys))
		for _, k := range keys {
			kv = append(kv, k+"="+x[k])
		}
		return strings.Join(kv, ",")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Wrap memoizes fn under the given key with the given TTL. A cached value
// short-circuits fn entirely; on a miss the result is stored before being
// returned. If fn fails nothing is cached and the error propagates. Cache
// faults are logged and degrade to a direct call, never surfaced.
func Wrap[T any](ctx context.Context, c Cache, key string, ttl time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	if c == nil {
		return fn()
	}

	if b, ok, err := c.Get(ctx, key); err != nil {
		logger.Errorf("cache get %q failed, falling through: %v", key, err)
	} else if ok {
		var out T
		if uerr := json.Unmarshal(b, &out); uerr != nil {
			logger.Errorf("cache entry %q undecodable, falling through: %v", key, uerr)
		} else {
			metrics.CacheHits.Inc()
			return out, nil
		}
	}
	metrics.CacheMisses.Inc()

	out, err := fn()
	if err != nil {
		return zero, err
	}

	if b, err := json.Marshal(out); err != nil {
		logger.Errorf("cache marshal for %q failed: %v", key, err)
	} else if err := c.Set(ctx, key, b, ttl); err != nil {
		logger.Errorf("cache set %q failed: %v", key, err)
	}
	return out, nil
}
