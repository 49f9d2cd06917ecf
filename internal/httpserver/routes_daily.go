// apps/go-server/internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle.
//   - GET  /daily     → today's date key
//   - POST /daily/new → start today's puzzle at the requested difficulty
//
// Everyone gets the same seed word for a date and difficulty; see internal/daily.

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/texttwist/apps/go-server/internal/daily"
	"github.com/robalobadob/texttwist/apps/go-server/internal/host"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDailyInfo)
		r.Post("/new", s.handleDailyNew)
	})
}

type dailyRes struct {
	Date string `json:"date"`
}

func (s *Server) handleDailyInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dailyRes{Date: daily.DateKey(time.Now())})
}

type dailyNewRes struct {
	newGameRes
	Date string `json:"date"`
}

// handleDailyNew is POST /game/new with the mode fixed to daily.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	d, _, ok := decodeNewGame(w, r)
	if !ok {
		return
	}
	res, err := s.startGame(r.Context(), d, host.Daily)
	if err != nil {
		s.writeCommandError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dailyNewRes{newGameRes: res, Date: daily.DateKey(time.Now())})
}
