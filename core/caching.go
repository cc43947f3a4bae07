package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cacheTTL is how long a cached snapshot stays valid.
const cacheTTL = 7 * 24 * time.Hour

// cachedSnapshot returns the repository snapshot, reading it from the snapshot store when possible.
func cachedSnapshot(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) (*schema.RepoSnapshot, error) {
	head, err := client.GetRepoHash(ctx, cfg.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetSnapshotStore()
	}
	if store == nil {
		return collectSnapshot(ctx, cfg, client, head)
	}

	// line counts come from the working tree, so local edits make HEAD an unsafe key
	dirty, err := client.IsDirty(ctx, cfg.RepoPath)
	if err != nil {
		contract.LogWarn("Cannot check worktree status, skipping cache", err)
	}
	if dirty || err != nil {
		return collectSnapshot(ctx, cfg, client, head)
	}

	key := generateCacheKey(cfg, head)
	if snapshot := checkCacheHit(store, key); snapshot != nil {
		return snapshot, nil
	}
	return computeAndStore(ctx, cfg, client, store, key, head)
}

// checkCacheHit attempts to retrieve and validate a cached snapshot
func checkCacheHit(store contract.CacheStore, key string) *schema.RepoSnapshot {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}
	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > cacheTTL {
		return nil // stale or version mismatch
	}
	var snapshot schema.RepoSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil
	}
	return &snapshot
}

// computeAndStore collects the snapshot and stores it in cache
func computeAndStore(ctx context.Context, cfg *contract.Config, client contract.GitClient, store contract.CacheStore, key, head string) (*schema.RepoSnapshot, error) {
	snapshot, err := collectSnapshot(ctx, cfg, client, head)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(snapshot); err == nil {
		if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Failed to cache snapshot", err)
		}
	}
	return snapshot, nil
}

// generateCacheKey creates a unique key from everything that changes the snapshot contents.
func generateCacheKey(cfg *contract.Config, head string) string {
	key := fmt.Sprintf("%s:%s:%s:%t:%s:%s",
		cfg.RepoPath,
		head,
		cfg.GitBackend,
		cfg.Follow,
		strings.Join(cfg.Excludes, ","),
		cfg.PathFilter,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
