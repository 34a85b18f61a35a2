package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/fitfuzz/internal/domain/model"
)

func activity(i int) model.Activity {
	a := model.NewActivity(float64(i), 20, 60, model.StatusOK, "reference")
	a.ID = fmt.Sprintf("a-%03d", i)
	return a
}

func TestMemoryStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithCapacity(3))

	if n, _ := store.Count(ctx); n != 0 {
		t.Fatalf("expected count 0, got %d", n)
	}

	for i := 1; i <= 2; i++ {
		if err := store.Append(ctx, activity(i)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a-002" || got[1].ID != "a-001" {
		t.Errorf("expected newest first [a-002 a-001], got %v", ids(got))
	}
}

func TestMemoryStore_Eviction(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithCapacity(3))
	for i := 1; i <= 5; i++ {
		_ = store.Append(ctx, activity(i))
	}

	if n, _ := store.Count(ctx); n != 3 {
		t.Errorf("expected count 3, got %d", n)
	}
	got, _ := store.Recent(ctx, 3)
	want := []string{"a-005", "a-004", "a-003"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("expected %v, got %v", want, ids(got))
		}
	}

	got, _ = store.Recent(ctx, 1)
	if len(got) != 1 || got[0].ID != "a-005" {
		t.Errorf("expected [a-005], got %v", ids(got))
	}
}

func TestMemoryStore_InvalidLimitAndClose(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Recent(ctx, 0); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}

	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := store.Append(ctx, activity(1)); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed on append, got %v", err)
	}
	if _, err := store.Recent(ctx, 1); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed on recent, got %v", err)
	}
	if _, err := store.Count(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed on count, got %v", err)
	}
}

func TestMemoryStore_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithCapacity(1000))

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_ = store.Append(ctx, activity(w*100+i))
			}
		}(w)
	}
	wg.Wait()

	if n, _ := store.Count(ctx); n != 800 {
		t.Errorf("expected 800 entries, got %d", n)
	}
	got, _ := store.Recent(ctx, 1000)
	seen := make(map[string]bool, len(got))
	for _, a := range got {
		if seen[a.ID] {
			t.Fatalf("duplicate entry %s", a.ID)
		}
		seen[a.ID] = true
	}
}

func ids(as []model.Activity) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.ID
	}
	return out
}
