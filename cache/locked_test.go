package cache

import (
	"math/rand"
	"runtime"
	"strconv"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

// A mixed workload of concurrent Set/Get/SetWithTTL/Delete on random
// keys through the mutex wrapper. Should pass under `-race` without
// detector reports.
func TestLocked_MixedWorkload(t *testing.T) {
	c, err := NewLocked[string, []byte](Options[string, []byte]{
		Capacity: 8_192,
	})
	if err != nil {
		t.Fatal(err)
	}

	workers := 4 * runtime.GOMAXPROCS(0)
	keyspace := 50_000
	deadline := time.Now().Add(2 * time.Second)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		id := w
		g.Go(func() error {
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)*9973))
			for time.Now().Before(deadline) {
				k := "k:" + strconv.Itoa(r.Intn(keyspace))
				switch r.Intn(100) {
				case 0, 1, 2, 3, 4: // ~5% — Delete
					c.Delete(k)
				case 5, 6, 7, 8, 9: // ~5% — SetWithTTL
					if err := c.SetWithTTL(k, []byte("x"), time.Duration(10+r.Intn(20))*time.Millisecond); err != nil {
						return err
					}
				case 10, 11, 12, 13, 14: // ~5% — Set
					c.Set(k, []byte("x"))
				case 15: // rare — snapshots and purge
					c.Keys()
					c.PurgeExpired()
				default: // ~84% — reads
					c.Get(k)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	if c.Len() > c.Capacity() {
		t.Fatalf("Len %d exceeds capacity %d", c.Len(), c.Capacity())
	}
}

// The wrapper preserves the core semantics verbatim: LRU order, TTL,
// stats, and constructor validation all pass through.
func TestLocked_Passthrough(t *testing.T) {
	t.Parallel()

	if _, err := NewLocked[string, int](Options[string, int]{Capacity: 0}); err == nil {
		t.Fatal("invalid capacity must fail through the wrapper")
	}

	c, err := NewLocked[string, int](Options[string, int]{Capacity: 2, TrackStats: true})
	if err != nil {
		t.Fatal(err)
	}

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")    // promote + hit
	c.Set("c", 3) // evicts b

	if c.Has("b") {
		t.Fatal("b must be evicted")
	}
	if !c.Has("a") || !c.Has("c") {
		t.Fatal("a and c must survive")
	}
	st := c.Stats()
	if st.Hits != 1 || st.Evictions != 1 {
		t.Fatalf("want hits=1 evictions=1, got %+v", st)
	}
}
