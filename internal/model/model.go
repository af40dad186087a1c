package model

import "time"

// Slot is one bookable hour, keyed by its timestamp string
// ("YYYY-MM-DDThh:00"). A slot is created unbooked the first time its
// date is requested and only ever moves from unbooked to booked.
type Slot struct {
	Time        string     `json:"time"`
	Booked      bool       `json:"isBooked"`
	OwnerUserID *int64     `json:"-"`
	CreatedAt   time.Time  `json:"-"`
	BookedAt    *time.Time `json:"-"`
}

// Booking is the shape returned by the my-bookings listing.
type Booking struct {
	SlotTime string `json:"slot_time"`
}
