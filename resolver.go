package composer

import (
	"database/sql"
	"sync/atomic"
)

// DBResolver holds a primary pool and a set of read replicas. The
// executor asks it for a replica on every query; with no replicas
// configured it hands back the primary.
type DBResolver struct {
	primary  *sql.DB
	replicas []*sql.DB
	lb       LoadBalancer
}

// LoadBalancer selects a replica from a pool.
type LoadBalancer interface {
	Next(replicas []*sql.DB) *sql.DB
}

// RoundRobinLoadBalancer cycles through replicas in order.
type RoundRobinLoadBalancer struct {
	counter uint64
}

func (r *RoundRobinLoadBalancer) Next(replicas []*sql.DB) *sql.DB {
	switch len(replicas) {
	case 0:
		return nil
	case 1:
		return replicas[0]
	}
	idx := atomic.AddUint64(&r.counter, 1) - 1
	return replicas[idx%uint64(len(replicas))]
}

// ResolverOption configures a DBResolver.
type ResolverOption func(*DBResolver)

// WithPrimary sets the primary pool.
func WithPrimary(db *sql.DB) ResolverOption {
	return func(r *DBResolver) {
		r.primary = db
	}
}

// WithReplicas sets the read replica pools.
func WithReplicas(dbs ...*sql.DB) ResolverOption {
	return func(r *DBResolver) {
		r.replicas = dbs
	}
}

// WithLoadBalancer overrides the replica selection strategy. The
// default is round-robin.
func WithLoadBalancer(lb LoadBalancer) ResolverOption {
	return func(r *DBResolver) {
		r.lb = lb
	}
}

// NewDBResolver builds a resolver from the given options.
func NewDBResolver(opts ...ResolverOption) *DBResolver {
	r := &DBResolver{lb: &RoundRobinLoadBalancer{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Primary returns the primary pool.
func (r *DBResolver) Primary() *sql.DB {
	return r.primary
}

// Replica returns the next replica, falling back to the primary when
// none are configured.
func (r *DBResolver) Replica() *sql.DB {
	if len(r.replicas) == 0 {
		return r.primary
	}
	return r.lb.Next(r.replicas)
}

// HasReplicas reports whether any replicas are configured.
func (r *DBResolver) HasReplicas() bool {
	return len(r.replicas) > 0
}
