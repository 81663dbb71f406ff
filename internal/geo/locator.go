package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/example/campus-shuttle/internal/models"
)

// DefaultUserPos is used whenever a position lookup is unavailable,
// denied, or times out. Tracking fidelity degrades silently; the
// session never surfaces this as an error.
var DefaultUserPos = models.Coord{Lat: 19.1334, Lon: 72.9133}

// Locator resolves the rider's position once. Implementations must
// honor ctx cancellation.
type Locator interface {
	Locate(ctx context.Context) (models.Coord, error)
}

// Static always reports a fixed coordinate.
type Static struct {
	Pos models.Coord
}

func (s Static) Locate(ctx context.Context) (models.Coord, error) { return s.Pos, nil }

// HTTPLocator asks a JSON endpoint for a one-shot coordinate.
// Expected response body: {"lat": <float>, "lon": <float>}.
type HTTPLocator struct {
	Endpoint string
	Client   *http.Client
}

func NewHTTPLocator(endpoint string) *HTTPLocator {
	return &HTTPLocator{Endpoint: endpoint, Client: &http.Client{Timeout: 5 * time.Second}}
}

func (l *HTTPLocator) Locate(ctx context.Context) (models.Coord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.Endpoint, nil)
	if err != nil {
		return models.Coord{}, err
	}
	resp, err := l.Client.Do(req)
	if err != nil {
		return models.Coord{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return models.Coord{}, fmt.Errorf("locator status %d", resp.StatusCode)
	}
	var out models.Coord
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.Coord{}, err
	}
	return out, nil
}

// Resolve performs a bounded lookup and falls back to DefaultUserPos
// on any failure, including a nil locator (capability absent).
func Resolve(ctx context.Context, l Locator, timeout time.Duration) models.Coord {
	if l == nil {
		return DefaultUserPos
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	pos, err := l.Locate(ctx)
	if err != nil {
		return DefaultUserPos
	}
	return pos
}
