package services

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/team-manager/models"
	"github.com/Dosada05/team-manager/repositories"
)

const (
	leaderboardSize = 5
	matchTrendSize  = 10
)

type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	users     repositories.UserRepository
	trainings repositories.TrainingRepository
	matches   repositories.MatchRepository
	leaves    repositories.LeaveRepository
	checkins  repositories.CheckinRepository
}

func NewDashboardService(
	users repositories.UserRepository,
	trainings repositories.TrainingRepository,
	matches repositories.MatchRepository,
	leaves repositories.LeaveRepository,
	checkins repositories.CheckinRepository,
) DashboardService {
	return &dashboardService{
		users:     users,
		trainings: trainings,
		matches:   matches,
		leaves:    leaves,
		checkins:  checkins,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var (
		leaderboard    []models.LeaderboardEntry
		finished       []*models.Match
		totalPlayers   int
		totalTrainings int
		totalLeaves    int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		leaderboard, err = s.checkins.Leaderboard(gctx, leaderboardSize)
		return err
	})
	g.Go(func() error {
		var err error
		finished, err = s.matches.ListFinished(gctx, matchTrendSize)
		return err
	})
	g.Go(func() error {
		var err error
		totalPlayers, err = s.users.CountByRoles(gctx, models.RolePlayer, models.RoleCaptain)
		return err
	})
	g.Go(func() error {
		var err error
		totalTrainings, err = s.trainings.Count(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		totalLeaves, err = s.leaves.CountTrainingLeaves(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, storageError("load dashboard stats", err)
	}

	if leaderboard == nil {
		leaderboard = []models.LeaderboardEntry{}
	}

	trend := make([]models.MatchTrendPoint, 0, len(finished))
	for _, m := range finished {
		trend = append(trend, models.MatchTrendPoint{
			Date:          m.MatchTime.Format("01-02"),
			Opponent:      m.Opponent,
			OurScore:      m.OurScore,
			OpponentScore: m.OpponentScore,
			Result:        m.Result(),
		})
	}

	return &models.DashboardStats{
		Leaderboard: leaderboard,
		Attendance: models.AttendanceStats{
			Rate:           attendanceRate(totalPlayers, totalTrainings, totalLeaves),
			Leaves:         totalLeaves,
			TotalTrainings: totalTrainings,
			TotalPlayers:   totalPlayers,
		},
		MatchTrend: trend,
	}, nil
}

// attendanceRate: доля посещений (в процентах, 1 знак) среди всех
// возможных посещений: игроки × тренировки минус заявки на отпуск.
func attendanceRate(players, trainings, leaves int) float64 {
	possible := players * trainings
	if players == 0 {
		possible = 1
	}
	if possible <= 0 {
		return 0
	}
	rate := float64(possible-leaves) / float64(possible) * 100
	return math.Round(rate*10) / 10
}
