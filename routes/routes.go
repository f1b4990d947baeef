package routes

import (
	"io"
	"log"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/team-manager/docs"
	"github.com/Dosada05/team-manager/feed"
	"github.com/Dosada05/team-manager/handlers"
	"github.com/Dosada05/team-manager/middleware"
	"github.com/Dosada05/team-manager/permissions"
	"github.com/Dosada05/team-manager/services"
)

type Options struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	// AccessLog: куда писать строки access-лога; по умолчанию stdout chi.
	AccessLog io.Writer
}

// SetupRoutes собирает всё API под /api.
func SetupRoutes(router chi.Router, svc *services.Services, hub *feed.Hub, opts Options) {
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.StripQueryToken)
	router.Use(accessLogger(opts.AccessLog))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authHandler := handlers.NewAuthHandler(svc.Auth)
	userHandler := handlers.NewUserHandler(svc.Users)
	trainingHandler := handlers.NewTrainingHandler(svc.Trainings)
	matchHandler := handlers.NewMatchHandler(svc.Matches)
	leaveHandler := handlers.NewLeaveHandler(svc.Leaves)
	venueHandler := handlers.NewVenueHandler(svc.Venues)
	photoHandler := handlers.NewPhotoHandler(svc.Photos)
	checkinHandler := handlers.NewCheckinHandler(svc.Checkins)
	uploadHandler := handlers.NewUploadHandler(svc.Uploads)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)
	webSocketHandler := handlers.NewWebSocketHandler(hub)

	authenticate := middleware.Authenticate(svc.Auth, opts.Logger)

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", handlers.Ping)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Post("/logout", authHandler.Logout)
			r.Get("/ws", webSocketHandler.ServeWs)
			r.Post("/upload", uploadHandler.Upload)
			r.Get("/dashboard/stats", dashboardHandler.Stats)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.ListUsers)
				r.Get("/profile", userHandler.GetProfile)
				r.Put("/profile", userHandler.UpdateProfile)
			})

			r.Route("/trainings", func(r chi.Router) {
				r.Get("/", trainingHandler.ListTrainings)
				r.With(middleware.Authorize(permissions.CreateTraining)).Post("/", trainingHandler.CreateTraining)
				r.With(middleware.Authorize(permissions.DeleteTraining)).Delete("/{trainingID}", trainingHandler.DeleteTraining)
			})

			r.Route("/matches", func(r chi.Router) {
				r.Get("/", matchHandler.ListMatches)
				r.With(middleware.Authorize(permissions.CreateMatch)).Post("/", matchHandler.CreateMatch)

				r.Route("/{matchID}", func(r chi.Router) {
					r.With(middleware.Authorize(permissions.UpdateMatchScore)).Put("/", matchHandler.UpdateScore)
					r.With(middleware.Authorize(permissions.DeleteMatch)).Delete("/", matchHandler.DeleteMatch)
					r.With(middleware.Authorize(permissions.SignUpForMatch)).Post("/signup", matchHandler.SignUp)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", leaveHandler.ListLeaves)
				r.With(middleware.Authorize(permissions.CreateLeave)).Post("/", leaveHandler.RequestLeave)
			})

			r.Route("/venues", func(r chi.Router) {
				r.Get("/", venueHandler.ListVenues)
				r.With(middleware.Authorize(permissions.CreateVenue)).Post("/", venueHandler.ReserveVenue)
			})

			r.Route("/photos", func(r chi.Router) {
				r.Get("/", photoHandler.ListPhotos)
				r.With(middleware.Authorize(permissions.CreatePhoto)).Post("/", photoHandler.AddPhoto)
				r.With(middleware.Authorize(permissions.DeletePhoto)).Delete("/{photoID}", photoHandler.DeletePhoto)
			})

			r.Route("/personal_trainings", func(r chi.Router) {
				r.Get("/", checkinHandler.ListCheckins)
				r.Post("/", checkinHandler.LogCheckin)
			})
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"the requested resource could not be found","kind":"not_found"}` + "\n"))
	})
}

func accessLogger(out io.Writer) func(http.Handler) http.Handler {
	if out == nil {
		return chiMiddleware.Logger
	}
	return chiMiddleware.RequestLogger(&chiMiddleware.DefaultLogFormatter{
		Logger:  log.New(out, "", log.LstdFlags),
		NoColor: true,
	})
}
