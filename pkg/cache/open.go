package cache

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// defaultMemoryEntries bounds the in-process backend opened via "memory".
const defaultMemoryEntries = 512

// Open builds a cache backend from a connection target:
//
//	none                          caching disabled
//	memory                        in-process LRU
//	redis://[:pass@]host:port/0   shared Redis server
//	mongodb://host/...            MongoDB (database "engrave")
//	sqlite://path, *.db, *.sqlite SQLite database file
//	anything else                 file cache rooted at that directory
//
// The CLI feeds it the --cache-backend flag or the ENGRAVE_CACHE_URL
// environment variable.
func Open(ctx context.Context, target string) (Cache, error) {
	switch {
	case target == "none":
		return NewNullCache(), nil
	case target == "memory":
		return NewMemoryCache(defaultMemoryEntries)
	case strings.HasPrefix(target, "redis://"):
		return openRedis(ctx, target)
	case strings.HasPrefix(target, "mongodb://"), strings.HasPrefix(target, "mongodb+srv://"):
		return NewMongoCache(ctx, target, "engrave", "cache")
	case strings.HasPrefix(target, "sqlite://"):
		return NewSQLiteCache(strings.TrimPrefix(target, "sqlite://"))
	case strings.Contains(target, "://"):
		return nil, fmt.Errorf("unsupported cache backend %q", target)
	case strings.HasSuffix(target, ".db"), strings.HasSuffix(target, ".sqlite"):
		return NewSQLiteCache(target)
	default:
		return NewFileCache(target)
	}
}

// openRedis maps a redis:// URL onto the client options: host from the
// authority, password from the userinfo, database number from the path.
func openRedis(ctx context.Context, target string) (Cache, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse redis target: %w", err)
	}
	password := ""
	if u.User != nil {
		password, _ = u.User.Password()
	}
	db := 0
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		db, err = strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("redis database in %q: %w", target, err)
		}
	}
	return NewRedisCache(ctx, u.Host, password, db)
}
