package adapters

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSystemClock(t *testing.T) {
	before := time.Now()
	now := SystemClock{}.Now()

	if now.Location() != time.UTC {
		t.Errorf("expected UTC, got %s", now.Location())
	}
	if now.Before(before.Add(-time.Second)) {
		t.Errorf("clock is behind: %s < %s", now, before)
	}
}

func TestUUIDGenerator(t *testing.T) {
	gen := UUIDGenerator{}
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := gen.NewID()
		parsed, err := uuid.Parse(id)
		if err != nil {
			t.Fatalf("invalid uuid %q: %v", id, err)
		}
		if parsed.Version() != 4 {
			t.Errorf("expected version 4, got %d", parsed.Version())
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
	}
}
