package models

import "time"

type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Seat-status labels shown in vehicle lists.
const (
	StatusAvailable = "Seats available"
	StatusBusy      = "Little busy"
	StatusFull      = "No seats"
)

type Vehicle struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	ETA    string `json:"eta"`
	Seats  int    `json:"seats"`
	Status string `json:"status"`
	Route  string `json:"route"`
	Coords Coord  `json:"coords"`
}

// StatusForSeats recomputes the status label after a seat change:
// "No seats" iff seats == 0.
func StatusForSeats(seats int) string {
	if seats > 0 {
		return StatusAvailable
	}
	return StatusFull
}

type Feedback struct {
	ID   string    `json:"id"`
	Text string    `json:"text"`
	Date time.Time `json:"date"`
}

type Profile struct {
	Identity  string     `json:"identity"`
	Language  string     `json:"language"`
	Wallet    int        `json:"wallet"`
	Rides     int        `json:"rides"`
	Ratings   []int      `json:"ratings"`
	Feedbacks []Feedback `json:"feedbacks"`
}

type PaymentMethod string

const (
	PayWalletOrUpi PaymentMethod = "wallet_or_upi"
	PayCash        PaymentMethod = "cash"
)

// WaitingNotice tells nearby drivers a rider is waiting for a vehicle.
type WaitingNotice struct {
	VehicleID string `json:"vehicle_id"`
	Route     string `json:"route"`
	RiderID   string `json:"rider_id"`
	ETA       string `json:"eta"`
}

// PositionEvent is one simulated live-tracking step for a vehicle.
type PositionEvent struct {
	VehicleID string    `json:"vehicle_id"`
	Pos       Coord     `json:"pos"`
	Step      int       `json:"step"`
	At        time.Time `json:"at"`
}
