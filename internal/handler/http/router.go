package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/handler/http/middleware"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	leaveHandler LeaveHandler,
	attendanceHandler AttendanceHandler,
	statsHandler StatsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "teamtrack"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/", leaveHandler.CreateRequest)
				r.Get("/my", leaveHandler.GetMyRequests)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", leaveHandler.GetRequest)
					r.Put("/", leaveHandler.EditRequest)
					r.Delete("/", leaveHandler.DeleteRequest)
					r.Post("/cancel", leaveHandler.CancelRequest)

					// Manager or admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireManager)
						r.Post("/approve", leaveHandler.ApproveRequest)
						r.Post("/reject", leaveHandler.RejectRequest)
					})
				})

				// Manager or admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", leaveHandler.ListRequests)
				})
			})

			r.Route("/leave-balances", func(r chi.Router) {
				r.Get("/my", leaveHandler.GetMyBalance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/{userID}", leaveHandler.GetBalance)
				})
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/punch-in", attendanceHandler.PunchIn)
				r.Post("/punch-out", attendanceHandler.PunchOut)
				r.Get("/my", attendanceHandler.GetMyAttendance)

				// Manager or admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", attendanceHandler.ListAttendance)
					r.Get("/{id}", attendanceHandler.GetAttendance)
					r.Patch("/{id}/status", attendanceHandler.UpdateStatus)
					r.Post("/status", attendanceHandler.UpdateStatus)
				})
			})

			r.Route("/stats", func(r chi.Router) {
				r.Get("/my", statsHandler.GetMyDashboard)

				// Manager or admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/leave", statsHandler.GetLeaveStats)
					r.Get("/attendance", statsHandler.GetAttendanceStats)
					r.Get("/dashboard", statsHandler.GetDashboard)
				})
			})
		})
	})
	return r
}
