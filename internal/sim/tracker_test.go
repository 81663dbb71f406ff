package sim

import (
	"sync"
	"testing"
	"time"

	"github.com/example/campus-shuttle/internal/models"
)

type recorder struct {
	mu   sync.Mutex
	seen []models.Coord
}

func (r *recorder) record(pos models.Coord, step int) {
	r.mu.Lock()
	r.seen = append(r.seen, pos)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []models.Coord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Coord(nil), r.seen...)
}

func TestFirstEmissionIsStaticPosition(t *testing.T) {
	start := models.Coord{Lat: 19.1338, Lon: 72.9140}
	rec := &recorder{}
	tr := Start(start, Config{Interval: 5 * time.Millisecond, Steps: 2, Seed: 1}, rec.record)
	defer tr.Stop()

	seen := rec.snapshot()
	if len(seen) == 0 || seen[0] != start {
		t.Fatalf("expected synchronous first emission at %v, got %v", start, seen)
	}
}

func TestStopsAtStepCap(t *testing.T) {
	rec := &recorder{}
	tr := Start(models.Coord{}, Config{Interval: 2 * time.Millisecond, Steps: 3, Seed: 1}, rec.record)

	select {
	case <-tr.Done():
	case <-time.After(time.Second):
		t.Fatal("tracker did not finish")
	}
	n := len(rec.snapshot())
	if n != 4 { // step 0 plus three walk steps
		t.Fatalf("expected 4 emissions, got %d", n)
	}
	time.Sleep(20 * time.Millisecond)
	if got := len(rec.snapshot()); got != n {
		t.Fatalf("emissions continued past the cap: %d -> %d", n, got)
	}
}

func TestStopPreventsFurtherSteps(t *testing.T) {
	rec := &recorder{}
	tr := Start(models.Coord{}, Config{Interval: 50 * time.Millisecond, Steps: 100, Seed: 1}, rec.record)
	tr.Stop()

	select {
	case <-tr.Done():
	case <-time.After(time.Second):
		t.Fatal("tracker did not stop")
	}
	if n := len(rec.snapshot()); n != 1 {
		t.Fatalf("expected only the initial emission, got %d", n)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	tr := Start(models.Coord{}, Config{Interval: 5 * time.Millisecond, Steps: 2, Seed: 1}, func(models.Coord, int) {})
	tr.Stop()
	tr.Stop() // second stop must be a no-op

	<-tr.Done()
	tr.Stop() // stopping a finished tracker is also a no-op
}

func TestJitterStaysBounded(t *testing.T) {
	start := models.Coord{Lat: 19.0, Lon: 72.0}
	rec := &recorder{}
	tr := Start(start, Config{Interval: time.Millisecond, Steps: 20, Seed: 42}, rec.record)
	<-tr.Done()

	prev := start
	for i, pos := range rec.snapshot() {
		if i == 0 {
			continue
		}
		dLat := pos.Lat - prev.Lat
		dLon := pos.Lon - prev.Lon
		if dLat > DefaultLatJitter || dLat < -DefaultLatJitter {
			t.Fatalf("lat step %d out of bounds: %v", i, dLat)
		}
		if dLon > DefaultLonJitter || dLon < -DefaultLonJitter {
			t.Fatalf("lon step %d out of bounds: %v", i, dLon)
		}
		prev = pos
	}
}
