package models

import "time"

type Photo struct {
	ID          int       `json:"id"`
	URL         string    `json:"url"`
	Description *string   `json:"description,omitempty"`
	UploadedBy  int       `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
