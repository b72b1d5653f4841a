package http

import (
	"net/http"
	"strconv"

	"github.com/teamtrack-hq/teamtrack-backend-go/internal/domain/stats"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/handler/http/middleware"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/handler/http/response"
)

type StatsHandler interface {
	GetLeaveStats(w http.ResponseWriter, r *http.Request)
	GetAttendanceStats(w http.ResponseWriter, r *http.Request)
	GetDashboard(w http.ResponseWriter, r *http.Request)
	GetMyDashboard(w http.ResponseWriter, r *http.Request)
}

type StatsHandlerImpl struct {
	statsService stats.StatsService
}

func NewStatsHandler(statsService stats.StatsService) StatsHandler {
	return &StatsHandlerImpl{statsService: statsService}
}

// GetLeaveStats implements StatsHandler.
func (s *StatsHandlerImpl) GetLeaveStats(w http.ResponseWriter, r *http.Request) {
	result, err := s.statsService.GetLeaveStats(r.Context(), scopeFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetAttendanceStats implements StatsHandler.
func (s *StatsHandlerImpl) GetAttendanceStats(w http.ResponseWriter, r *http.Request) {
	result, err := s.statsService.GetAttendanceStats(r.Context(), scopeFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetDashboard implements StatsHandler.
func (s *StatsHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := s.statsService.GetDashboard(r.Context(), scopeFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyDashboard implements StatsHandler. The scope is pinned to the acting
// user regardless of query parameters.
func (s *StatsHandlerImpl) GetMyDashboard(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	scope := scopeFromQuery(r)
	scope.UserID = actor.ID
	scope.Department = ""

	result, err := s.statsService.GetDashboard(r.Context(), scope)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func scopeFromQuery(r *http.Request) stats.Scope {
	q := r.URL.Query()
	year, _ := strconv.Atoi(q.Get("year"))
	return stats.Scope{
		UserID:     q.Get("user_id"),
		Department: q.Get("department"),
		Year:       year,
	}
}
