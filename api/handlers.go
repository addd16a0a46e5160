/*
handlers.go - HTTP handlers for the earnings engine surfaces

PURPOSE:
  Exposes the engine's query and command surfaces as JSON over REST. Thin
  glue: parse, validate shape, delegate to the engine, serialize.

ENDPOINTS:
  Queries:
    GET  /api/profile           Current profile
    GET  /api/earnings/today    Today's record + progress + message
    GET  /api/progress/month    Month calendar view (cached)
    GET  /api/progress/detailed Earnings view (cached)
    GET  /api/worktime          Live shift view
    GET  /api/payday            Next payday view
    GET  /api/message           Motivational tier
    GET  /api/achievements      Achievement catalog + unlock state
    GET  /api/challenge/today   Today's challenge

  Commands:
    POST /api/earnings          Manual earnings update
    POST /api/profile           Setup / reconfigure profile
    PUT  /api/working-hours     Replace shift window
    PUT  /api/payday-settings   Replace payday rule
    POST /api/admin/rollover    Run the idempotent month-rollover check

ERROR HANDLING:
  Engine validation errors map to 400; malformed JSON to 400; everything
  else the engine swallows itself, so 500s do not occur here.

SEE ALSO:
  - dto.go: request/response shapes
  - server.go: router and middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/earnwise/earnings-engine/earnings"
)

// Handler holds the HTTP layer's dependencies.
type Handler struct {
	Engine *earnings.Engine
	Log    *logrus.Logger
}

func NewHandler(engine *earnings.Engine, log *logrus.Logger) *Handler {
	return &Handler{Engine: engine, Log: log}
}

// =============================================================================
// QUERIES
// =============================================================================

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toProfileDTO(h.Engine.Profile()))
}

func (h *Handler) GetTodayEarnings(w http.ResponseWriter, r *http.Request) {
	today := h.Engine.TodayEarnings()
	writeJSON(w, http.StatusOK, EarningsDTO{
		Date:        today.Date.Format("2006-01-02"),
		Amount:      today.Amount.StringFixed(2),
		GoalReached: today.GoalReached,
		Progress:    h.Engine.Progress(),
		Message:     h.Engine.Message(),
	})
}

func (h *Handler) GetMonthInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Engine.CurrentMonthInfo())
}

func (h *Handler) GetDetailedProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toDetailedProgressDTO(h.Engine.DetailedProgress()))
}

func (h *Handler) GetWorkingTime(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toWorkingTimeDTO(h.Engine.WorkingTimeInfo()))
}

func (h *Handler) GetPayday(w http.ResponseWriter, r *http.Request) {
	info := h.Engine.PaydayInfo()
	writeJSON(w, http.StatusOK, PaydayDTO{
		NextPayday: info.NextPayday.Format("2006-01-02"),
		DaysUntil:  info.DaysUntil,
	})
}

func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": h.Engine.Message()})
}

func (h *Handler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	list := h.Engine.Achievements()
	dtos := make([]AchievementDTO, len(list))
	for i, a := range list {
		dtos[i] = toAchievementDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetTodayChallenge(w http.ResponseWriter, r *http.Request) {
	c, ok := h.Engine.TodayChallenge()
	if !ok {
		writeError(w, http.StatusNotFound, "no challenge for today", nil)
		return
	}
	writeJSON(w, http.StatusOK, toChallengeDTO(c))
}

// =============================================================================
// COMMANDS
// =============================================================================

func (h *Handler) UpdateEarnings(w http.ResponseWriter, r *http.Request) {
	var req UpdateEarningsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err)
		return
	}
	if err := h.Engine.UpdateTodayEarnings(amount); err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.GetTodayEarnings(w, r)
}

func (h *Handler) SetupProfile(w http.ResponseWriter, r *http.Request) {
	var req SetupProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	income, err := decimal.NewFromString(req.MonthlyIncome)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid monthly income", err)
		return
	}
	policy := earnings.CalculationPolicy(req.Policy)
	if err := h.Engine.SetupProfile(income, req.DisplayName, policy); err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileDTO(h.Engine.Profile()))
}

func (h *Handler) UpdateWorkingHours(w http.ResponseWriter, r *http.Request) {
	var req WorkingHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	start, err := parseClock(req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start time", err)
		return
	}
	end, err := parseClock(req.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end time", err)
		return
	}
	cfg := earnings.WorkingHoursConfig{
		StartMinute:   start,
		EndMinute:     end,
		AutoCalculate: req.AutoCalculate,
	}
	if err := h.Engine.UpdateWorkingHours(cfg); err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkingTimeDTO(h.Engine.WorkingTimeInfo()))
}

func (h *Handler) UpdatePaydaySettings(w http.ResponseWriter, r *http.Request) {
	var req PaydayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	cfg := earnings.PaydayConfig{DayOfMonth: req.DayOfMonth, LastDay: req.LastDay}
	if err := h.Engine.UpdatePaydaySettings(cfg); err != nil {
		h.writeEngineError(w, err)
		return
	}
	info := h.Engine.PaydayInfo()
	writeJSON(w, http.StatusOK, PaydayDTO{
		NextPayday: info.NextPayday.Format("2006-01-02"),
		DaysUntil:  info.DaysUntil,
	})
}

func (h *Handler) TriggerRollover(w http.ResponseWriter, r *http.Request) {
	h.Engine.CheckMonthRollover()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	if earnings.IsValidationError(err) {
		writeError(w, http.StatusBadRequest, "validation failed", err)
		return
	}
	h.Log.WithError(err).Error("engine command failed")
	writeError(w, http.StatusInternalServerError, "internal error", err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
