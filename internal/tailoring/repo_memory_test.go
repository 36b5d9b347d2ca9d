package tailoring

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestMemoryRepoRoundTrip(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	gen := Generation{ID: "abc", Status: StatusCompleted, ATSScore: 83, CreatedAt: time.Now()}
	if err := repo.Create(ctx, gen); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, "abc")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ATSScore != 83 {
		t.Errorf("ATSScore = %d", got.ATSScore)
	}

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryRepoListNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 5; i++ {
		repo.Create(ctx, Generation{
			ID:        fmt.Sprintf("g%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
	}

	got, err := repo.List(ctx, 3)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []string{"g4", "g3", "g2"} {
		if got[i].ID != want {
			t.Errorf("got[%d].ID = %s, want %s", i, got[i].ID, want)
		}
	}

	all, _ := repo.List(ctx, 0)
	if len(all) != 5 {
		t.Errorf("List(0) len = %d, want all 5", len(all))
	}
}

func TestMemoryRepoCancelledContext(t *testing.T) {
	repo := NewMemoryRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := repo.Create(ctx, Generation{ID: "x"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Create err = %v", err)
	}
	if _, err := repo.List(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("List err = %v", err)
	}
}
