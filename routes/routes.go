package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nevrodda11/torny-aws-api/config"
	"github.com/nevrodda11/torny-aws-api/handlers"
	"github.com/nevrodda11/torny-aws-api/middleware"
	"github.com/nevrodda11/torny-aws-api/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/fx"
)

// Params collects everything the router mounts.
type Params struct {
	fx.In

	Config      *config.Config
	Logger      zerolog.Logger
	AuthService services.AuthService

	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Club         *handlers.ClubHandler
	Sport        *handlers.SportHandler
	Team         *handlers.TeamHandler
	Tournament   *handlers.TournamentHandler
	Entry        *handlers.EntryHandler
	Achievement  *handlers.AchievementHandler
	Image        *handlers.ImageHandler
	Video        *handlers.VideoHandler
	Notification *handlers.NotificationHandler
	Comment      *handlers.CommentHandler
	WebSocket    *handlers.WebSocketHandler
}

func NewRouter(p Params) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestID(p.Logger))
	r.Use(middleware.Metrics)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: p.Config.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	if allowsAnyOrigin(p.Config.CORSAllowedOrigins) {
		r.Use(chiMiddleware.SetHeader("Access-Control-Allow-Origin", "*"))
	}

	r.Get("/health", p.Health.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Post("/auth/login", p.Auth.Login)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", p.User.Register)
		r.Route("/{userID}", func(r chi.Router) {
			r.Get("/", p.User.GetUserByID)
			r.Put("/", p.User.UpdateUser)
			r.Get("/teams", p.Team.ListMyTeams)
			r.Get("/notifications", p.Notification.ListNotifications)
		})
	})
	r.Get("/players", p.User.ListPlayers)

	r.Route("/clubs", func(r chi.Router) {
		r.Get("/", p.Club.ListClubs)
		r.Post("/{clubID}/admins", p.Club.AddAdmin)
	})

	r.Route("/sports", func(r chi.Router) {
		r.Get("/", p.Sport.GetAllSports)
		r.Get("/{sportID}", p.Sport.GetSportByID)
	})

	r.Route("/teams", func(r chi.Router) {
		r.Get("/", p.Team.ListTeams)
		r.Post("/", p.Team.CreateTeam)
		r.Get("/{teamID}", p.Team.GetTeamByID)
		r.Put("/{teamID}/members/{userID}/status", p.Team.UpdateMemberStatus)
	})

	r.Route("/tournaments", func(r chi.Router) {
		r.Get("/", p.Tournament.ListTournaments)
		r.Post("/", p.Tournament.CreateTournament)
		r.Get("/{tournamentID}", p.Tournament.GetTournamentByID)
		r.Get("/{tournamentID}/entries", p.Entry.ListEntries)
	})
	r.Get("/organisers/{userID}/tournaments", p.Tournament.ListOrganiserTournaments)

	r.Route("/entries", func(r chi.Router) {
		r.Post("/", p.Entry.CreateEntry)
		r.Post("/check", p.Entry.CheckEntry)
		r.Put("/status", p.Entry.UpdateEntryStatus)
	})

	r.Route("/achievements", func(r chi.Router) {
		r.Post("/", p.Achievement.CreateAchievement)
		r.Get("/{entityID}", p.Achievement.ListAchievements)
		r.Delete("/{achievementID}", p.Achievement.DeleteAchievement)
	})

	r.Post("/images", p.Image.UploadImages)
	r.Route("/gallery", func(r chi.Router) {
		r.Get("/", p.Image.ListGallery)
		r.Post("/", p.Image.UploadGalleryImage)
		r.Delete("/{imageID}", p.Image.DeleteGalleryImage)
	})

	r.Post("/videos", p.Video.UploadChunk)

	r.Put("/notifications/{notificationID}", p.Notification.MarkRead)

	r.Route("/comments", func(r chi.Router) {
		r.Get("/", p.Comment.ListComments)
		r.Post("/", p.Comment.CreateComment)
	})

	r.With(middleware.Authenticate(p.AuthService)).Get("/ws/notifications", p.WebSocket.ServeNotifications)

	return r
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
