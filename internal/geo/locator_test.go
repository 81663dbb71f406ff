package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/example/campus-shuttle/internal/models"
)

type failingLocator struct{}

func (failingLocator) Locate(ctx context.Context) (models.Coord, error) {
	return models.Coord{}, errors.New("denied")
}

type hangingLocator struct{}

func (hangingLocator) Locate(ctx context.Context) (models.Coord, error) {
	<-ctx.Done()
	return models.Coord{}, ctx.Err()
}

func TestResolveFallsBackWhenCapabilityAbsent(t *testing.T) {
	if got := Resolve(context.Background(), nil, time.Second); got != DefaultUserPos {
		t.Fatalf("expected fallback, got %v", got)
	}
}

func TestResolveFallsBackOnDenial(t *testing.T) {
	if got := Resolve(context.Background(), failingLocator{}, time.Second); got != DefaultUserPos {
		t.Fatalf("expected fallback, got %v", got)
	}
}

func TestResolveFallsBackOnTimeout(t *testing.T) {
	if got := Resolve(context.Background(), hangingLocator{}, 5*time.Millisecond); got != DefaultUserPos {
		t.Fatalf("expected fallback, got %v", got)
	}
}

func TestResolveUsesLocatorResult(t *testing.T) {
	want := models.Coord{Lat: 19.2, Lon: 72.8}
	if got := Resolve(context.Background(), Static{Pos: want}, time.Second); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestHTTPLocator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"lat": 19.14, "lon": 72.92}`))
	}))
	defer srv.Close()

	l := NewHTTPLocator(srv.URL)
	got, err := l.Locate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := models.Coord{Lat: 19.14, Lon: 72.92}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestHTTPLocatorNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", 503)
	}))
	defer srv.Close()

	if _, err := NewHTTPLocator(srv.URL).Locate(context.Background()); err == nil {
		t.Fatal("expected error on non-200")
	}
}
