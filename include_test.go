package composer

import (
	"errors"
	"testing"
)

func includeTestRegistry() *Registry {
	r := NewRegistry()
	r.Define(ModelConfig{
		Name: "User",
		Relations: map[string]RelationConfig{
			"posts":   HasMany("posts", ""),
			"profile": HasOne("profiles", ""),
		},
	})
	r.Define(ModelConfig{
		Name: "Post",
		Relations: map[string]RelationConfig{
			"author": BelongsTo("users", "author_id"),
		},
	})
	return r
}

func TestInclude_RecordsRelation(t *testing.T) {
	r := includeTestRegistry()

	qb := r.Query("User").Include("posts").Include("profile")
	if qb.Err() != nil {
		t.Fatalf("unexpected error: %v", qb.Err())
	}

	incs := qb.GetIncludes()
	if len(incs) != 2 {
		t.Fatalf("got %d includes, want 2", len(incs))
	}
	if incs[0].Relation != "posts" || incs[0].Config.Type != RelationHasMany {
		t.Errorf("first include = %+v", incs[0])
	}
	if incs[1].Relation != "profile" || incs[1].Config.Type != RelationHasOne {
		t.Errorf("second include = %+v", incs[1])
	}
}

func TestInclude_UnknownRelationFailsFast(t *testing.T) {
	r := includeTestRegistry()

	qb := r.Query("User").Include("nonexistent")
	err := qb.Err()
	if err == nil {
		t.Fatal("expected error for unknown relation")
	}
	if !IsRelationNotFound(err) {
		t.Errorf("err = %v, want relation-not-found", err)
	}

	var relErr *RelationError
	if !errors.As(err, &relErr) {
		t.Fatalf("err type = %T, want *RelationError", err)
	}
	if relErr.Relation != "nonexistent" || relErr.Model != "User" {
		t.Errorf("RelationError = %+v", relErr)
	}
}

func TestInclude_FilterNotInvokedAtRecordTime(t *testing.T) {
	r := includeTestRegistry()

	invoked := false
	r.Query("User").Include("posts", func(sq *QueryBuilder) {
		invoked = true
	})

	if invoked {
		t.Error("filter ran during include; it must be deferred to batch generation")
	}
}

func TestGetIncludes_ReturnsCopy(t *testing.T) {
	r := includeTestRegistry()

	qb := r.Query("User").Include("posts")
	incs := qb.GetIncludes()
	incs[0].Relation = "tampered"

	if got := qb.GetIncludes(); got[0].Relation != "posts" {
		t.Errorf("builder includes mutated through returned slice: %+v", got[0])
	}
}

func TestClone_IndependentIncludes(t *testing.T) {
	r := includeTestRegistry()

	orig := r.Query("User").Include("posts")
	clone := orig.Clone().Include("profile")

	if n := len(orig.GetIncludes()); n != 1 {
		t.Errorf("original has %d includes after cloning, want 1", n)
	}
	if n := len(clone.GetIncludes()); n != 2 {
		t.Errorf("clone has %d includes, want 2", n)
	}
}

func TestClone_IndependentConditions(t *testing.T) {
	r := includeTestRegistry()

	orig := r.Query("User").Where("active", OpEq, true)
	clone := orig.Clone().Where("age", OpGt, 30)

	origQ := orig.Build()
	cloneQ := clone.Build()

	if origQ.Text != "SELECT * FROM users WHERE active = ?" {
		t.Errorf("original text = %q", origQ.Text)
	}
	if cloneQ.Text != "SELECT * FROM users WHERE active = ? AND age > ?" {
		t.Errorf("clone text = %q", cloneQ.Text)
	}
}

func TestInclude_AfterErrorIsNoop(t *testing.T) {
	r := includeTestRegistry()

	qb := r.Query("User").Include("nonexistent").Include("posts")
	if len(qb.GetIncludes()) != 0 {
		t.Error("includes recorded after an error")
	}
	if !IsRelationNotFound(qb.Err()) {
		t.Errorf("err = %v", qb.Err())
	}
}
