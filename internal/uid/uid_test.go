package uid

import (
	"sync"
	"testing"
)

func TestSupplierSequential(t *testing.T) {
	s := New()
	for want := int64(0); want < 3; want++ {
		if got := s.Next(); got != want {
			t.Fatalf("got %d, want %d", got, want)
		}
	}
}

func TestSupplierConcurrentUnique(t *testing.T) {
	var s Supplier
	const workers, per = 8, 100
	seen := make(chan int64, workers*per)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range per {
				seen <- s.Next()
			}
		}()
	}
	wg.Wait()
	close(seen)
	uniq := make(map[int64]bool)
	for id := range seen {
		if uniq[id] {
			t.Fatalf("duplicate id %d", id)
		}
		uniq[id] = true
	}
	if len(uniq) != workers*per {
		t.Fatalf("got %d ids", len(uniq))
	}
}
