package models

import "time"

type VenueReservation struct {
	ID            int       `json:"id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	ProofPhotoURL *string   `json:"proof_photo_url,omitempty"`
	ReservedBy    int       `json:"reserved_by"`
	CreatedAt     time.Time `json:"created_at"`
}
