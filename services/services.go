package services

import (
	"log/slog"
	"time"

	"github.com/Dosada05/team-manager/events"
	"github.com/Dosada05/team-manager/repositories"
	"github.com/Dosada05/team-manager/storage"
)

type Services struct {
	Auth      AuthService
	Users     UserService
	Trainings TrainingService
	Matches   MatchService
	Leaves    LeaveService
	Venues    VenueService
	Photos    PhotoService
	Checkins  CheckinService
	Uploads   UploadService
	Dashboard DashboardService
}

type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	Uploader  storage.FileUploader // nil: загрузка файлов отключена
	Publisher events.Publisher
	Logger    *slog.Logger
}

func NewServices(repos *repositories.Repositories, opts Options) *Services {
	n := NewNotifier(opts.Publisher, opts.Logger)
	cascade := NewCascadeEngine(repos.Tx, opts.Logger)

	return &Services{
		Auth:      NewAuthService(repos.Tx, repos.Users, repos.Sessions, opts.JWTSecret, opts.TokenTTL),
		Users:     NewUserService(repos.Tx, repos.Users),
		Trainings: NewTrainingService(repos.Tx, repos.Trainings, repos.Leaves, cascade, n),
		Matches:   NewMatchService(repos.Tx, repos.Matches, repos.Signups, repos.Leaves, repos.Users, cascade, n),
		Leaves:    NewLeaveService(repos.Tx, repos.Leaves, repos.Trainings, repos.Matches, n),
		Venues:    NewVenueService(repos.Tx, repos.Venues, n),
		Photos:    NewPhotoService(repos.Tx, repos.Photos, opts.Uploader, n),
		Checkins:  NewCheckinService(repos.Tx, repos.Checkins, n),
		Uploads:   NewUploadService(opts.Uploader),
		Dashboard: NewDashboardService(repos.Users, repos.Trainings, repos.Matches, repos.Leaves, repos.Checkins),
	}
}
