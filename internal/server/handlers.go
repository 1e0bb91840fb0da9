package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jakechorley/oncall-rota/pkg/core/constraints"
	"github.com/jakechorley/oncall-rota/pkg/core/services"
	"github.com/jakechorley/oncall-rota/pkg/core/summary"
	"github.com/jakechorley/oncall-rota/pkg/db"
	"github.com/jakechorley/oncall-rota/pkg/output"
)

// maxPeriod bounds the period a single request may schedule
const maxPeriod = 5 * 366 * 24 * time.Hour

// maxBodyBytes caps the size of a request body
const maxBodyBytes = 1 << 20

type scheduleRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Save  bool   `json:"save"`
}

type summaryResponse struct {
	WorkloadHours     map[string]float64 `json:"workloadHours"`
	LongestShiftHours map[string]float64 `json:"longestShiftHours"`
	Histogram         map[int]int        `json:"shiftLengthHistogram"`
	UnassignedHours   float64            `json:"unassignedHours"`
}

type scheduleResponse struct {
	RunID      string          `json:"runId,omitempty"`
	Slots      []output.Slot   `json:"slots"`
	Unassigned int             `json:"unassigned"`
	Summary    summaryResponse `json:"summary"`
}

type runResponse struct {
	ID          string        `json:"id"`
	Start       string        `json:"start"`
	End         string        `json:"end"`
	ShiftLength int           `json:"shiftLength"`
	CreatedAt   time.Time     `json:"createdAt"`
	Slots       []output.Slot `json:"slots,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request_too_large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	start, err := constraints.ParseDate(req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_start")
		return
	}
	end, err := constraints.ParseDate(req.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_end")
		return
	}
	if end.Sub(start) > maxPeriod {
		writeError(w, http.StatusBadRequest, "period_too_long")
		return
	}

	rota, err := s.cfg.Rota(start, end)
	if err != nil {
		s.logger.Error("Failed to build rota", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "config_error")
		return
	}

	var store services.ScheduleStore
	if s.store != nil {
		store = s.store
	}

	result, err := services.GenerateSchedule(r.Context(), store, rota, s.logger, services.GenerateScheduleInput{
		Start:  start,
		End:    end,
		Save:   req.Save,
		Source: "http",
	})
	switch {
	case errors.Is(err, services.ErrInvalidPeriod):
		writeError(w, http.StatusBadRequest, "invalid_period")
		return
	case errors.Is(err, services.ErrNoStore):
		writeError(w, http.StatusServiceUnavailable, "no_database")
		return
	case err != nil:
		s.logger.Error("Failed to generate schedule", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "schedule_failed")
		return
	}

	writeJSON(w, http.StatusOK, scheduleResponse{
		RunID:      result.RunID,
		Slots:      output.Slots(result.Schedule),
		Unassigned: result.Unassigned,
		Summary:    newSummaryResponse(result.Summary),
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no_database")
		return
	}

	runs, err := s.store.GetRuns(r.Context())
	if err != nil {
		s.logger.Error("Failed to list runs", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	resp := make([]runResponse, len(runs))
	for i, run := range runs {
		resp[i] = newRunResponse(run, nil)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no_database")
		return
	}

	runID := chi.URLParam(r, "runID")

	run, err := s.store.GetRun(r.Context(), runID)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		s.logger.Error("Failed to load run", zap.String("run_id", runID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	assignments, err := s.store.GetAssignments(r.Context(), runID)
	if err != nil {
		s.logger.Error("Failed to load assignments", zap.String("run_id", runID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	writeJSON(w, http.StatusOK, newRunResponse(*run, assignments))
}

func newSummaryResponse(s *summary.Summary) summaryResponse {
	resp := summaryResponse{
		WorkloadHours:     make(map[string]float64, len(s.Workload)),
		LongestShiftHours: make(map[string]float64, len(s.LongestShift)),
		Histogram:         s.Histogram,
		UnassignedHours:   s.Unassigned.Hours(),
	}
	for human, d := range s.Workload {
		resp.WorkloadHours[human] = d.Hours()
	}
	for human, d := range s.LongestShift {
		resp.LongestShiftHours[human] = d.Hours()
	}
	return resp
}

func newRunResponse(run db.Run, assignments []db.Assignment) runResponse {
	resp := runResponse{
		ID:          run.ID,
		Start:       run.Start.Format(time.DateOnly),
		End:         run.End.Format(time.DateOnly),
		ShiftLength: run.ShiftLength,
		CreatedAt:   run.CreatedAt,
	}
	for _, a := range assignments {
		resp.Slots = append(resp.Slots, output.NewSlot(a.Start, a.End, a.Human))
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
