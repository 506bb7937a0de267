package query

import "context"

// Update is an optimistic cache mutation in flight: the cached list was
// already rewritten, the prior value is remembered, and the caller settles it
// with Commit or Rollback once the network call resolves.
type Update struct {
	cache *Cache
	key   Key
	prev  any
	had   bool
}

// PatchFunc rewrites the cached value speculatively: remove the deleted row,
// flip the toggled flag. It receives the current cached value and returns the
// replacement.
type PatchFunc func(current any) any

// BeginOptimistic snapshots the entry under key, applies patch to it, and
// returns the pending update. When the key has no cached entry the patch is
// skipped; Commit and Rollback still behave correctly.
func (c *Cache) BeginOptimistic(key Key, patch PatchFunc) *Update {
	c.mu.Lock()
	defer c.mu.Unlock()

	u := &Update{cache: c, key: key}
	e, ok := c.entries[key]
	if !ok {
		return u
	}

	u.prev = e.value
	u.had = true
	c.entries[key] = &entry{value: patch(e.value), fetchedAt: e.fetchedAt}
	return u
}

// Commit finalizes the update after the mutation succeeded: the affected
// resource families are invalidated so the next read re-fetches ground truth.
func (u *Update) Commit(resources ...Resource) {
	u.cache.Invalidate(resources...)
}

// Rollback restores the pre-mutation snapshot verbatim after the mutation
// failed. The entry goes back exactly as it was, including its fetch stamp.
func (u *Update) Rollback() {
	u.cache.mu.Lock()
	defer u.cache.mu.Unlock()

	if !u.had {
		delete(u.cache.entries, u.key)
		return
	}
	if e, ok := u.cache.entries[u.key]; ok {
		e.value = u.prev
	} else {
		u.cache.entries[u.key] = &entry{value: u.prev, fetchedAt: u.cache.now()}
	}
}

// Mutate runs the full optimistic protocol: patch the cache, run the
// mutation, then commit (invalidating the given families) or roll back. The
// mutation error is returned untouched; it is not retried.
func (c *Cache) Mutate(ctx context.Context, key Key, patch PatchFunc, mutate func(ctx context.Context) error, invalidate ...Resource) error {
	u := c.BeginOptimistic(key, patch)
	if err := mutate(ctx); err != nil {
		u.Rollback()
		return err
	}
	u.Commit(invalidate...)
	return nil
}
