// Package app holds the authoritative in-memory model for one rider
// session: the vehicle fleet, the profile, the screen state machine
// and the live-tracking lifecycle. All mutations flow through Session
// methods and are written through to the persisted store as they
// happen.
package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/example/campus-shuttle/internal/geo"
	"github.com/example/campus-shuttle/internal/models"
	"github.com/example/campus-shuttle/internal/notify"
	"github.com/example/campus-shuttle/internal/observability"
	"github.com/example/campus-shuttle/internal/payments"
	"github.com/example/campus-shuttle/internal/sim"
	"github.com/example/campus-shuttle/internal/store"
)

// Destination is the fixed drop-off point drawn at the end of the
// tracking path.
var Destination = models.Coord{Lat: 19.1349, Lon: 72.9174}

// Routes offered on the home screen.
var Routes = []string{
	"Hostel 6 to Main gate",
	"Hostel 5 to Main gate",
	"Hostel 18 to Main gate",
	"Hostel 17 to LHC",
}

// Defaults substituted whenever the store is empty or a blob is
// malformed. Recovery is silent; the session never fails over bad
// persisted data.
const (
	defaultWallet = 150
	defaultRides  = 3
)

func defaultVehicles() []models.Vehicle {
	return []models.Vehicle{
		{ID: "ev-01", Title: "Buggy (EV-01)", ETA: "5 min", Seats: 4, Status: models.StatusAvailable, Route: "Hostel 6 to Main gate", Coords: models.Coord{Lat: 19.1338, Lon: 72.9140}},
		{ID: "ev-02", Title: "Buggy (EV-02)", ETA: "9 min", Seats: 2, Status: models.StatusBusy, Route: "Hostel 6 to Main gate", Coords: models.Coord{Lat: 19.1345, Lon: 72.9128}},
		{ID: "ev-03", Title: "Buggy (EV-03)", ETA: "15 min", Seats: 0, Status: models.StatusFull, Route: "Hostel 6 to Main gate", Coords: models.Coord{Lat: 19.1329, Lon: 72.9152}},
	}
}

func defaultRatings() []int { return []int{5, 4} }

func defaultFeedbacks() []models.Feedback {
	return []models.Feedback{{ID: "seed-1", Text: "Quick ride to the main gate.", Date: time.Now()}}
}

// Options wires a Session to its collaborators. Only Store is
// required; everything else degrades to a local simulation.
type Options struct {
	Store    store.Store
	Logger   *slog.Logger
	Notifier notify.Notifier
	Locator  geo.Locator
	Charger  payments.Charger

	Fare          int
	TrackInterval time.Duration
	TrackSteps    int
	ListLoadDelay time.Duration
	GeoTimeout    time.Duration

	// OnPosition receives every live-tracking step, for fanout to
	// websockets or telemetry. Called outside the session lock.
	OnPosition func(models.PositionEvent)
}

type Session struct {
	mu sync.Mutex

	screen   Screen
	vehicles []models.Vehicle
	profile  models.Profile
	theme    string

	query         string
	selectedRoute string
	selectedID    string

	waitingModal   bool
	loadingList    bool
	loadGen        int
	showOnboarding bool
	notice         string

	userPos models.Coord
	livePos *models.Coord

	tracker  *sim.Tracker
	trackGen int

	stor       store.Store
	logger     *slog.Logger
	notifier   notify.Notifier
	charger    payments.Charger
	onPosition func(models.PositionEvent)

	fare          int
	trackInterval time.Duration
	trackSteps    int
	listLoadDelay time.Duration
}

// New loads persisted state (falling back to defaults), resolves the
// rider position in the background, and starts on the sign-in screen.
func New(opts Options) *Session {
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Fare <= 0 {
		opts.Fare = 20
	}
	if opts.ListLoadDelay <= 0 {
		opts.ListLoadDelay = 520 * time.Millisecond
	}
	if opts.GeoTimeout <= 0 {
		opts.GeoTimeout = 5 * time.Second
	}

	s := &Session{
		screen:        ScreenSignIn,
		stor:          opts.Store,
		logger:        opts.Logger,
		notifier:      opts.Notifier,
		charger:       opts.Charger,
		onPosition:    opts.OnPosition,
		fare:          opts.Fare,
		trackInterval: opts.TrackInterval,
		trackSteps:    opts.TrackSteps,
		listLoadDelay: opts.ListLoadDelay,
		userPos:       geo.DefaultUserPos,
	}
	s.loadState()
	if len(s.vehicles) > 0 {
		s.selectedRoute = s.vehicles[0].Route
	}

	// One-shot bounded lookup; on timeout or denial the fixed fallback
	// already in place stands.
	if opts.Locator != nil {
		go func() {
			pos := geo.Resolve(context.Background(), opts.Locator, opts.GeoTimeout)
			s.mu.Lock()
			s.userPos = pos
			s.mu.Unlock()
		}()
	}
	return s
}

// Close stops the live tracker if one is running.
func (s *Session) Close() {
	s.mu.Lock()
	t := s.tracker
	s.tracker = nil
	s.trackGen++
	s.mu.Unlock()
	if t != nil {
		t.Stop()
	}
}

func (s *Session) loadState() {
	ctx := context.Background()

	s.vehicles = defaultVehicles()
	if b, ok, err := s.stor.Get(ctx, store.KeyVehicles); err == nil && ok {
		var evs []models.Vehicle
		if json.Unmarshal(b, &evs) == nil && len(evs) > 0 {
			s.vehicles = evs
		}
	}

	s.profile = models.Profile{
		Language:  "English",
		Wallet:    defaultWallet,
		Rides:     defaultRides,
		Ratings:   defaultRatings(),
		Feedbacks: defaultFeedbacks(),
	}
	if b, ok, err := s.stor.Get(ctx, store.KeyWallet); err == nil && ok {
		if w, err := strconv.Atoi(string(b)); err == nil && w >= 0 {
			s.profile.Wallet = w
		}
	}
	if b, ok, err := s.stor.Get(ctx, store.KeyRides); err == nil && ok {
		if r, err := strconv.Atoi(string(b)); err == nil && r >= 0 {
			s.profile.Rides = r
		}
	}
	if b, ok, err := s.stor.Get(ctx, store.KeyRatings); err == nil && ok {
		var r []int
		if json.Unmarshal(b, &r) == nil {
			s.profile.Ratings = r
		}
	}
	if b, ok, err := s.stor.Get(ctx, store.KeyFeedbacks); err == nil && ok {
		var f []models.Feedback
		if json.Unmarshal(b, &f) == nil {
			s.profile.Feedbacks = f
		}
	}

	s.theme = "light"
	if b, ok, err := s.stor.Get(ctx, store.KeyTheme); err == nil && ok {
		if t := string(b); t == "light" || t == "dark" {
			s.theme = t
		}
	}

	s.showOnboarding = true
	if b, ok, err := s.stor.Get(ctx, store.KeyOnboard); err == nil && ok && string(b) == "1" {
		s.showOnboarding = false
	}
}

// persist writes one key through to the store. Failures are logged and
// swallowed; persistence trouble must not fail the session.
func (s *Session) persist(key string, val []byte) {
	if err := s.stor.Set(context.Background(), key, val); err != nil {
		s.logger.Warn("store write failed", "key", key, "error", err)
		return
	}
	observability.StoreWritesTotal.WithLabelValues(key).Inc()
}

func (s *Session) persistVehicles() {
	b, _ := json.Marshal(s.vehicles)
	s.persist(store.KeyVehicles, b)
}

func (s *Session) persistWallet() {
	s.persist(store.KeyWallet, []byte(strconv.Itoa(s.profile.Wallet)))
}

func (s *Session) persistRides() {
	s.persist(store.KeyRides, []byte(strconv.Itoa(s.profile.Rides)))
}

func (s *Session) persistRatings() {
	b, _ := json.Marshal(s.profile.Ratings)
	s.persist(store.KeyRatings, b)
}

func (s *Session) persistFeedbacks() {
	b, _ := json.Marshal(s.profile.Feedbacks)
	s.persist(store.KeyFeedbacks, b)
}

func (s *Session) vehicleByID(id string) (int, bool) {
	for i := range s.vehicles {
		if s.vehicles[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func newID() string { b := make([]byte, 8); _, _ = rand.Read(b); return hex.EncodeToString(b) }
