package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/Dosada05/team-manager/events"
	"github.com/Dosada05/team-manager/models"
	"github.com/Dosada05/team-manager/permissions"
	"github.com/Dosada05/team-manager/repositories"
)

type MatchService interface {
	Create(ctx context.Context, session models.Session, input CreateMatchInput) (*models.Match, error)
	// List возвращает матчи с составом и флагом is_signed_up для вызывающего.
	List(ctx context.Context, session models.Session) ([]*models.MatchView, error)
	UpdateScore(ctx context.Context, session models.Session, id int, input UpdateScoreInput) (*models.Match, error)
	Delete(ctx context.Context, session models.Session, id int) (*CascadeReport, error)
	SignUp(ctx context.Context, session models.Session, matchID int) (*models.MatchSignup, error)
}

type CreateMatchInput struct {
	MatchTime string `json:"match_time" validate:"required"`
	Opponent  string `json:"opponent" validate:"required,max=100"`
	Location  string `json:"location" validate:"max=200"`
}

// UpdateScoreInput: частичное обновление; отсутствующие поля не меняются.
type UpdateScoreInput struct {
	OurScore      *int  `json:"our_score"`
	OpponentScore *int  `json:"opponent_score"`
	IsFinished    *bool `json:"is_finished"`
}

type matchService struct {
	tx      repositories.Transactor
	matches repositories.MatchRepository
	signups repositories.SignupRepository
	leaves  repositories.LeaveRepository
	users   repositories.UserRepository
	cascade *CascadeEngine
	Notifier
}

func NewMatchService(
	tx repositories.Transactor,
	matches repositories.MatchRepository,
	signups repositories.SignupRepository,
	leaves repositories.LeaveRepository,
	users repositories.UserRepository,
	cascade *CascadeEngine,
	n Notifier,
) MatchService {
	return &matchService{
		tx:       tx,
		matches:  matches,
		signups:  signups,
		leaves:   leaves,
		users:    users,
		cascade:  cascade,
		Notifier: n,
	}
}

func (s *matchService) Create(ctx context.Context, session models.Session, input CreateMatchInput) (*models.Match, error) {
	if err := authorize(session, permissions.CreateMatch); err != nil {
		return nil, err
	}
	input.Opponent = strings.TrimSpace(input.Opponent)
	input.Location = strings.TrimSpace(input.Location)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	matchTime, err := parseTimestamp("match_time", input.MatchTime)
	if err != nil {
		return nil, err
	}

	match := &models.Match{
		MatchTime: matchTime,
		Opponent:  input.Opponent,
		Location:  input.Location,
		CreatedBy: session.UserID,
	}

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		return s.matches.Create(ctx, exec, match)
	})
	if err != nil {
		return nil, storageError("create match", err)
	}

	s.notify(ctx, events.MatchCreated, match.ID, session.UserID, match)
	return match, nil
}

func (s *matchService) List(ctx context.Context, session models.Session) ([]*models.MatchView, error) {
	matches, err := s.matches.List(ctx)
	if err != nil {
		return nil, storageError("list matches", err)
	}
	participants, err := s.signups.ListAllParticipants(ctx)
	if err != nil {
		return nil, storageError("list match participants", err)
	}

	views := make([]*models.MatchView, 0, len(matches))
	for _, m := range matches {
		view := &models.MatchView{
			Match:        *m,
			Participants: participants[m.ID],
		}
		if view.Participants == nil {
			view.Participants = []models.MatchParticipant{}
		}
		for _, p := range view.Participants {
			if p.UserID == session.UserID {
				view.IsSignedUp = true
				break
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *matchService) UpdateScore(ctx context.Context, session models.Session, id int, input UpdateScoreInput) (*models.Match, error) {
	if err := authorize(session, permissions.UpdateMatchScore); err != nil {
		return nil, err
	}
	if !validScore(input.OurScore) || !validScore(input.OpponentScore) {
		return nil, ErrInvalidScore
	}

	match, err := s.matches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, storageError("get match", err)
	}

	if input.OurScore != nil {
		match.OurScore = *input.OurScore
	}
	if input.OpponentScore != nil {
		match.OpponentScore = *input.OpponentScore
	}
	if input.IsFinished != nil {
		match.IsFinished = *input.IsFinished
	}

	// last write wins
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		return s.matches.UpdateScore(ctx, exec, match)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		if errors.Is(err, repositories.ErrValueOutOfRange) {
			return nil, ErrInvalidScore
		}
		return nil, storageError("update match score", err)
	}

	s.notify(ctx, events.MatchUpdated, match.ID, session.UserID, match)
	return match, nil
}

func (s *matchService) Delete(ctx context.Context, session models.Session, id int) (*CascadeReport, error) {
	if err := authorize(session, permissions.DeleteMatch); err != nil {
		return nil, err
	}

	report, err := s.cascade.Delete(ctx, CascadeTarget{
		Kind: "match",
		ID:   id,
		Lock: func(ctx context.Context, exec repositories.SQLExecutor) error {
			err := s.matches.LockForDelete(ctx, exec, id)
			if errors.Is(err, repositories.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return err
		},
		Dependents: []Dependent{
			{Name: "match_signups", Remove: func(ctx context.Context, exec repositories.SQLExecutor) (int64, error) {
				return s.signups.DeleteByMatch(ctx, exec, id)
			}},
			{Name: "leave_requests", Remove: func(ctx context.Context, exec repositories.SQLExecutor) (int64, error) {
				return s.leaves.DeleteByMatch(ctx, exec, id)
			}},
		},
		Delete: func(ctx context.Context, exec repositories.SQLExecutor) error {
			return s.matches.Delete(ctx, exec, id)
		},
	})
	if err != nil {
		return report, err
	}

	s.notify(ctx, events.MatchDeleted, id, session.UserID, report)
	return report, nil
}

func (s *matchService) SignUp(ctx context.Context, session models.Session, matchID int) (*models.MatchSignup, error) {
	if err := authorize(session, permissions.SignUpForMatch); err != nil {
		return nil, err
	}

	signup := &models.MatchSignup{MatchID: matchID, UserID: session.UserID}
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		exists, err := s.matches.Exists(ctx, exec, matchID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrMatchNotFound
		}

		user, err := s.users.GetByID(ctx, session.UserID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if !user.ProfileComplete() {
			return ErrProfileIncomplete
		}

		created, err := s.signups.Create(ctx, exec, signup)
		if err != nil {
			if errors.Is(err, repositories.ErrSignupMatchInvalid) {
				return ErrMatchNotFound
			}
			return err
		}
		if !created {
			return ErrAlreadySignedUp
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) || errors.Is(err, ErrConflict) {
			return nil, err
		}
		return nil, storageError("sign up for match", err)
	}

	s.notify(ctx, events.MatchSignedUp, matchID, session.UserID, signup)
	return signup, nil
}

// счёт хранится в INTEGER
func validScore(score *int) bool {
	return score == nil || (*score >= 0 && *score <= math.MaxInt32)
}
