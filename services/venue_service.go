package services

import (
	"context"

	"github.com/Dosada05/team-manager/events"
	"github.com/Dosada05/team-manager/models"
	"github.com/Dosada05/team-manager/permissions"
	"github.com/Dosada05/team-manager/repositories"
)

type VenueService interface {
	Reserve(ctx context.Context, session models.Session, input CreateVenueInput) (*models.VenueReservation, error)
	List(ctx context.Context) ([]*models.VenueReservation, error)
}

type CreateVenueInput struct {
	StartTime     string  `json:"start_time" validate:"required"`
	EndTime       string  `json:"end_time" validate:"required"`
	ProofPhotoURL *string `json:"proof_photo_url" validate:"omitempty,max=500"`
}

type venueService struct {
	tx     repositories.Transactor
	venues repositories.VenueRepository
	Notifier
}

func NewVenueService(tx repositories.Transactor, venues repositories.VenueRepository, n Notifier) VenueService {
	return &venueService{tx: tx, venues: venues, Notifier: n}
}

func (s *venueService) Reserve(ctx context.Context, session models.Session, input CreateVenueInput) (*models.VenueReservation, error) {
	if err := authorize(session, permissions.CreateVenue); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	start, err := parseTimestamp("start_time", input.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseTimestamp("end_time", input.EndTime)
	if err != nil {
		return nil, err
	}

	venue := &models.VenueReservation{
		StartTime:     start,
		EndTime:       end,
		ProofPhotoURL: emptyToNil(input.ProofPhotoURL),
		ReservedBy:    session.UserID,
	}

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		return s.venues.Create(ctx, exec, venue)
	})
	if err != nil {
		return nil, storageError("create venue reservation", err)
	}

	s.notify(ctx, events.VenueReserved, venue.ID, session.UserID, venue)
	return venue, nil
}

func (s *venueService) List(ctx context.Context) ([]*models.VenueReservation, error) {
	venues, err := s.venues.List(ctx)
	if err != nil {
		return nil, storageError("list venue reservations", err)
	}
	return venues, nil
}
