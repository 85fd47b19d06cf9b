package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCache_NamespaceKey(t *testing.T) {
	cache := &Cache{}

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "simple key",
			key:      "test",
			expected: "gramflow:test",
		},
		{
			name:     "key with colon",
			key:      "rl:follow:42",
			expected: "gramflow:rl:follow:42",
		},
		{
			name:     "empty key",
			key:      "",
			expected: "gramflow:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cache.namespaceKey(tt.key)
			if result != tt.expected {
				t.Errorf("namespaceKey() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestDisabledCache(t *testing.T) {
	var disabled *Cache
	ctx := context.Background()

	if _, err := disabled.Incr(ctx, "key", time.Minute); !errors.Is(err, ErrCacheDisabled) {
		t.Errorf("Incr on disabled cache = %v, want ErrCacheDisabled", err)
	}
	if err := disabled.Delete(ctx, "key"); !errors.Is(err, ErrCacheDisabled) {
		t.Errorf("Delete on disabled cache = %v, want ErrCacheDisabled", err)
	}
	if err := disabled.Health(ctx); !errors.Is(err, ErrCacheDisabled) {
		t.Errorf("Health on disabled cache = %v, want ErrCacheDisabled", err)
	}
	if err := disabled.Close(); err != nil {
		t.Errorf("Close on disabled cache = %v, want nil", err)
	}
}
