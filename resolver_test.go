package composer

import (
	"database/sql"
	"testing"
)

func TestRoundRobinLoadBalancer(t *testing.T) {
	lb := &RoundRobinLoadBalancer{}

	replicas := []*sql.DB{{}, {}, {}}

	selected := make(map[*sql.DB]int)
	for i := 0; i < 9; i++ {
		selected[lb.Next(replicas)]++
	}

	for i, db := range replicas {
		if selected[db] != 3 {
			t.Errorf("replica %d selected %d times, want 3", i, selected[db])
		}
	}
}

func TestRoundRobinLoadBalancer_SingleReplica(t *testing.T) {
	lb := &RoundRobinLoadBalancer{}
	replicas := []*sql.DB{{}}

	for i := 0; i < 5; i++ {
		if lb.Next(replicas) != replicas[0] {
			t.Fatal("expected the only replica on every call")
		}
	}
}

func TestRoundRobinLoadBalancer_Empty(t *testing.T) {
	lb := &RoundRobinLoadBalancer{}
	if db := lb.Next(nil); db != nil {
		t.Error("expected nil for empty replica set")
	}
}

func TestDBResolver_ReplicaFallsBackToPrimary(t *testing.T) {
	primary := &sql.DB{}
	r := NewDBResolver(WithPrimary(primary))

	if r.HasReplicas() {
		t.Error("expected no replicas")
	}
	if r.Replica() != primary {
		t.Error("expected primary as replica fallback")
	}
}

func TestDBResolver_RoutesAcrossReplicas(t *testing.T) {
	primary := &sql.DB{}
	r1, r2 := &sql.DB{}, &sql.DB{}
	r := NewDBResolver(WithPrimary(primary), WithReplicas(r1, r2))

	if !r.HasReplicas() {
		t.Fatal("expected replicas")
	}
	seen := map[*sql.DB]bool{}
	for i := 0; i < 4; i++ {
		seen[r.Replica()] = true
	}
	if seen[primary] {
		t.Error("reads routed to primary despite replicas")
	}
	if !seen[r1] || !seen[r2] {
		t.Error("round-robin did not reach every replica")
	}
}
