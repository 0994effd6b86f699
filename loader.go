package composer

import (
	"context"
	"sync"
)

// Thunk is a deferred load result. Load hands one back immediately;
// invoking it flushes the pending batch (once, for all keys buffered so
// far) and yields this key's resolved value. For a single-cardinality
// relation the value is a Row or nil, otherwise a non-nil []Row.
type Thunk func() (any, error)

// Loader batches and deduplicates key lookups for one relation against
// one executor. Keys buffered between Load calls and the first thunk
// invocation are coalesced into a single query regardless of how many
// parents requested them. Resolved values are memoized for the
// loader's lifetime, so a later Load of a seen key never re-queries.
type Loader struct {
	registry *Registry
	relation RelationConfig
	executor Executor
	filter   IncludeFilter

	mu      sync.Mutex
	pending *loaderBatch
	cache   map[string]any

	nested []TrackedInclude
	rows   []Row
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithBatchFilter applies an include filter to every batch query the
// loader generates. The filter runs once per batch, not per key.
func WithBatchFilter(f IncludeFilter) LoaderOption {
	return func(l *Loader) {
		l.filter = f
	}
}

// NewLoader creates a loader for one relation.
func NewLoader(r *Registry, rel RelationConfig, exec Executor, opts ...LoaderOption) *Loader {
	l := &Loader{
		registry: r,
		relation: rel,
		executor: exec,
		cache:    make(map[string]any),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// loaderBatch is one coalescing window: the keys buffered since the
// previous flush, in arrival order with duplicates collapsed.
type loaderBatch struct {
	loader *Loader
	keys   []any
	seen   map[string]struct{}

	once    sync.Once
	results map[string]any
	err     error
}

// Load buffers a key into the current batch and returns a thunk for its
// value. Keys are compared by their normalized string form, so
// int64(1) and int32(1) share one slot. A key already memoized from an
// earlier batch resolves from cache without touching the batch.
func (l *Loader) Load(ctx context.Context, key any) Thunk {
	norm := anyToKeyString(key)

	l.mu.Lock()
	if v, ok := l.cache[norm]; ok {
		l.mu.Unlock()
		return func() (any, error) { return v, nil }
	}

	b := l.pending
	if b == nil {
		b = &loaderBatch{
			loader: l,
			seen:   make(map[string]struct{}),
		}
		l.pending = b
	}
	if _, dup := b.seen[norm]; !dup {
		b.seen[norm] = struct{}{}
		b.keys = append(b.keys, key)
	}
	l.mu.Unlock()

	return func() (any, error) {
		b.once.Do(func() { b.run(ctx) })
		if b.err != nil {
			return nil, b.err
		}
		return b.results[norm], nil
	}
}

// LoadMany buffers every key first and only then resolves, so the
// whole slice shares one batch. The returned values line up with the
// input order, duplicates included. A failed batch fails the call with
// the executor's error as-is.
func (l *Loader) LoadMany(ctx context.Context, keys []any) ([]any, error) {
	thunks := make([]Thunk, len(keys))
	for i, k := range keys {
		thunks[i] = l.Load(ctx, k)
	}

	out := make([]any, len(thunks))
	for i, t := range thunks {
		v, err := t()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Prime seeds the memo cache for a key without querying.
func (l *Loader) Prime(key any, value any) {
	l.mu.Lock()
	l.cache[anyToKeyString(key)] = value
	l.mu.Unlock()
}

// Clear drops one key from the memo cache.
func (l *Loader) Clear(key any) {
	l.mu.Lock()
	delete(l.cache, anyToKeyString(key))
	l.mu.Unlock()
}

// ClearAll drops the whole memo cache.
func (l *Loader) ClearAll() {
	l.mu.Lock()
	l.cache = make(map[string]any)
	l.mu.Unlock()
}

// run flushes the batch: detaches it so new Load calls start a fresh
// window, issues the single batched query and resolves every buffered
// key. A failure is recorded for this batch only; the next batch
// starts clean.
func (b *loaderBatch) run(ctx context.Context) {
	l := b.loader

	l.mu.Lock()
	if l.pending == b {
		l.pending = nil
	}
	keys := append([]any(nil), b.keys...)
	l.mu.Unlock()

	if l.executor == nil {
		b.err = ErrNilExecutor
		return
	}

	qb, batchKey, err := batchQueryBuilder(l.registry, l.relation, keys)
	if err != nil {
		b.err = err
		return
	}
	if l.filter != nil {
		l.filter(qb)
	}
	if err := qb.Err(); err != nil {
		b.err = err
		return
	}

	rows, err := l.executor.Execute(ctx, qb.Build())
	if err != nil {
		b.err = err
		return
	}

	groups := groupRowsByKey(rows, batchKey)
	single := l.relation.single()

	results := make(map[string]any, len(keys))
	for _, k := range keys {
		norm := anyToKeyString(k)
		bucket := groups[norm]
		if single {
			if len(bucket) > 0 {
				results[norm] = bucket[0]
			} else {
				results[norm] = nil
			}
		} else {
			if bucket == nil {
				bucket = []Row{}
			}
			results[norm] = bucket
		}
	}
	b.results = results

	l.mu.Lock()
	for k, v := range results {
		l.cache[k] = v
	}
	l.nested = append(l.nested, qb.GetIncludes()...)
	l.rows = append(l.rows, rows...)
	l.mu.Unlock()
}

// nestedIncludes returns the includes recorded by batch filters, for
// recursive resolution.
func (l *Loader) nestedIncludes() []TrackedInclude {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]TrackedInclude(nil), l.nested...)
}

// fetchedRows returns every row loaded so far, for recursive resolution.
func (l *Loader) fetchedRows() []Row {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Row(nil), l.rows...)
}
