package app

import (
	"github.com/example/campus-shuttle/internal/eta"
	"github.com/example/campus-shuttle/internal/models"
	"github.com/example/campus-shuttle/internal/views"
)

// Snapshot is the full read model handed to the presentation layer:
// current screen, domain state and the derived views, in one
// consistent copy.
type Snapshot struct {
	Screen        string            `json:"screen"`
	Identity      string            `json:"identity"`
	Language      string            `json:"language"`
	Theme         string            `json:"theme"`
	Wallet        int               `json:"wallet"`
	Rides         int               `json:"rides"`
	AverageRating float64           `json:"average_rating"`
	RatingsCount  int               `json:"ratings_count"`
	Feedbacks     []models.Feedback `json:"feedbacks"`

	Query         string   `json:"query"`
	SelectedRoute string   `json:"selected_route"`
	Routes        []string `json:"routes"`

	Vehicles        []models.Vehicle `json:"vehicles"`
	SelectedVehicle *models.Vehicle  `json:"selected_vehicle,omitempty"`

	UserPos     models.Coord   `json:"user_pos"`
	LivePos     *models.Coord  `json:"live_pos,omitempty"`
	Destination models.Coord   `json:"destination"`
	Path        []models.Coord `json:"path,omitempty"`
	LiveETA     string         `json:"live_eta,omitempty"`

	LoadingList    bool   `json:"loading_list"`
	WaitingModal   bool   `json:"waiting_modal"`
	ShowOnboarding bool   `json:"show_onboarding"`
	Notice         string `json:"notice,omitempty"`
}

// Snapshot assembles the read model under the lock. The vehicle list
// is already filtered by the current query and route; the path is
// user → live vehicle → destination while tracking.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Screen:        s.screen.String(),
		Identity:      s.profile.Identity,
		Language:      s.profile.Language,
		Theme:         s.theme,
		Wallet:        s.profile.Wallet,
		Rides:         s.profile.Rides,
		AverageRating: views.AverageRating(s.profile.Ratings),
		RatingsCount:  len(s.profile.Ratings),
		Feedbacks:     append([]models.Feedback(nil), s.profile.Feedbacks...),

		Query:         s.query,
		SelectedRoute: s.selectedRoute,
		Routes:        append([]string(nil), Routes...),

		Vehicles: views.Filter(s.vehicles, s.query, s.selectedRoute),

		UserPos:     s.userPos,
		Destination: Destination,

		LoadingList:    s.loadingList,
		WaitingModal:   s.waitingModal,
		ShowOnboarding: s.showOnboarding,
		Notice:         s.notice,
	}

	if i, ok := s.vehicleByID(s.selectedID); ok {
		v := s.vehicles[i]
		snap.SelectedVehicle = &v
		live := v.Coords
		if s.livePos != nil {
			live = *s.livePos
			lp := *s.livePos
			snap.LivePos = &lp
		}
		snap.Path = []models.Coord{s.userPos, live, Destination}
		snap.LiveETA = eta.Label(eta.EstimateSeconds(live, s.userPos, 0))
	}
	return snap
}

// Screen reports the current screen.
func (s *Session) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// Vehicles returns the filtered vehicle list for the current query and
// selected route.
func (s *Session) Vehicles() []models.Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return views.Filter(s.vehicles, s.query, s.selectedRoute)
}

// LivePosition reports the current simulated position of the selected
// vehicle, if tracking is active.
func (s *Session) LivePosition() (models.Coord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.livePos == nil {
		return models.Coord{}, false
	}
	return *s.livePos, true
}
