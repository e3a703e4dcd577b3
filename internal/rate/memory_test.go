package rate

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	l := NewMemoryLimiter(3, time.Hour)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		res, err := l.Allow(ctx, "ip:1.2.3.4")
		if err != nil {
			t.Fatal(err)
		}
		if !res.Allowed {
			t.Fatalf("hit %d denegado dentro del límite", i)
		}
		if res.CurrentHits != int64(i) {
			t.Fatalf("CurrentHits = %d, want %d", res.CurrentHits, i)
		}
	}

	res, err := l.Allow(ctx, "ip:1.2.3.4")
	if err != nil {
		t.Fatal(err)
	}
	if res.Allowed {
		t.Fatal("hit 4 permitido sobre el límite")
	}
	if res.Remaining != 0 {
		t.Fatalf("Remaining = %d, want 0", res.Remaining)
	}
	if res.RetryAfter <= 0 {
		t.Fatalf("RetryAfter = %v, want > 0", res.RetryAfter)
	}

	// Otra key no comparte ventana.
	res, err = l.Allow(ctx, "ip:5.6.7.8")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Allowed {
		t.Fatal("key distinta denegada")
	}
}

func TestMemoryLimiter_BarreVentanasViejas(t *testing.T) {
	l := NewMemoryLimiter(10, 20*time.Millisecond)
	ctx := context.Background()

	for _, k := range []string{"ip:a", "ip:b", "ip:c"} {
		if _, err := l.Allow(ctx, k); err != nil {
			t.Fatal(err)
		}
	}

	time.Sleep(50 * time.Millisecond)

	if _, err := l.Allow(ctx, "ip:d"); err != nil {
		t.Fatal(err)
	}

	l.mu.Lock()
	n := len(l.windows)
	l.mu.Unlock()
	if n != 1 {
		t.Fatalf("ventanas vivas = %d, want 1 (las vencidas se barren)", n)
	}
}
