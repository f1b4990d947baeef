package repositories

import (
	"database/sql"

	"github.com/redis/go-redis/v9"
)

type Repositories struct {
	Tx        Transactor
	Users     UserRepository
	Trainings TrainingRepository
	Matches   MatchRepository
	Signups   SignupRepository
	Leaves    LeaveRepository
	Venues    VenueRepository
	Photos    PhotoRepository
	Checkins  CheckinRepository
	Sessions  SessionRepository
}

func NewRepositories(db *sql.DB, rdb *redis.Client) *Repositories {
	return &Repositories{
		Tx:        NewTransactor(db),
		Users:     NewPostgresUserRepository(db),
		Trainings: NewPostgresTrainingRepository(db),
		Matches:   NewPostgresMatchRepository(db),
		Signups:   NewPostgresSignupRepository(db),
		Leaves:    NewPostgresLeaveRepository(db),
		Venues:    NewPostgresVenueRepository(db),
		Photos:    NewPostgresPhotoRepository(db),
		Checkins:  NewPostgresCheckinRepository(db),
		Sessions:  NewRedisSessionRepository(rdb),
	}
}
