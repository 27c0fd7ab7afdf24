package cache

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"disabled", "none", "cache.NullCache"},
		{"in-process", "memory", "*cache.MemoryCache"},
		{"sqlite scheme", "sqlite://" + filepath.Join(t.TempDir(), "engrave.db"), "*cache.SQLiteCache"},
		{"sqlite extension", filepath.Join(t.TempDir(), "engrave.sqlite"), "*cache.SQLiteCache"},
		{"directory", t.TempDir(), "*cache.FileCache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Open(ctx, tt.target)
			if err != nil {
				t.Fatalf("Open(%q): %v", tt.target, err)
			}
			defer c.Close()

			if got := typeName(c); got != tt.want {
				t.Errorf("Open(%q) = %s, want %s", tt.target, got, tt.want)
			}
		})
	}
}

func TestOpenRejectsBadTargets(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		target string
	}{
		{"unknown scheme", "ftp://cache.example.com"},
		{"bad redis database", "redis://localhost:6379/notanumber"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Open(ctx, tt.target); err == nil {
				t.Errorf("Open(%q) should fail", tt.target)
			}
		})
	}
}

// typeName names the backend without reflection noise in test output.
func typeName(c Cache) string {
	switch c.(type) {
	case NullCache:
		return "cache.NullCache"
	case *MemoryCache:
		return "*cache.MemoryCache"
	case *FileCache:
		return "*cache.FileCache"
	case *SQLiteCache:
		return "*cache.SQLiteCache"
	case *RedisCache:
		return "*cache.RedisCache"
	case *MongoCache:
		return "*cache.MongoCache"
	default:
		return "unknown"
	}
}
