package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Barritosaurus/schedsim/internal/process"
	"github.com/Barritosaurus/schedsim/internal/render"
	"github.com/Barritosaurus/schedsim/internal/report"
	"github.com/Barritosaurus/schedsim/internal/scheduler"
	"github.com/Barritosaurus/schedsim/internal/store"
)

type policyInfo struct {
	Name         scheduler.Policy `json:"name"`
	Title        string           `json:"title"`
	Preemptive   bool             `json:"preemptive"`
	NeedsQuantum bool             `json:"needs_quantum"`
	UsesPriority bool             `json:"uses_priority"`
}

type processInput struct {
	Name        string `json:"name"`
	ArrivalTime int64  `json:"arrival_time"`
	BurstTime   int64  `json:"burst_time"`
	Priority    *int64 `json:"priority,omitempty"`
}

type scheduleRequest struct {
	Label     string         `json:"label,omitempty"`
	Quantum   *int64         `json:"quantum,omitempty"`
	Processes []processInput `json:"processes"`
}

type scheduleResponse struct {
	RunID    string   `json:"run_id,omitempty"`
	Rejected []string `json:"rejected,omitempty"`
	render.Document
}

type compareRequest struct {
	scheduleRequest
	Policies []string `json:"policies,omitempty"`
}

type compareResponse struct {
	Comparison report.Comparison   `json:"comparison"`
	Results    []*scheduler.Result `json:"results"`
	RunIDs     []string            `json:"run_ids,omitempty"`
	Rejected   []string            `json:"rejected,omitempty"`
}

func (s *Server) handleListPolicies(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	var out []policyInfo
	for _, p := range scheduler.Policies() {
		out = append(out, policyInfo{
			Name:         p,
			Title:        p.Title(),
			Preemptive:   p.Preemptive(),
			NeedsQuantum: p.NeedsQuantum(),
			UsesPriority: p.UsesPriority(),
		})
	}
	respondOK(w, reqID, out)
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	policy, err := scheduler.ParsePolicy(chi.URLParam(r, "policy"))
	if err != nil {
		respondEngineError(w, reqID, err)
		return
	}

	var req scheduleRequest
	if !s.decode(w, r, reqID, &req) {
		return
	}
	set, rejected, err := s.buildSet(req.Processes)
	if err != nil {
		respondEngineError(w, reqID, err)
		return
	}

	res, err := scheduler.Run(policy, set, s.runOptions(req.Quantum)...)
	if err != nil {
		respondEngineError(w, reqID, err)
		return
	}
	doc, err := render.NewDocument(res)
	if err != nil {
		respondEngineError(w, reqID, err)
		return
	}
	resp := scheduleResponse{Rejected: rejected, Document: doc}

	if s.store == nil {
		respondOK(w, reqID, resp)
		return
	}
	resp.RunID, err = s.saveRun(r.Context(), req.Label, res)
	if err != nil {
		respondEngineError(w, reqID, err)
		return
	}
	respondCreated(w, reqID, resp)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req compareRequest
	if !s.decode(w, r, reqID, &req) {
		return
	}
	names := req.Policies
	if len(names) == 0 {
		names = s.config.Policies
	}
	policies, err := scheduler.ParsePolicies(names)
	if err != nil {
		respondEngineError(w, reqID, err)
		return
	}
	set, rejected, err := s.buildSet(req.Processes)
	if err != nil {
		respondEngineError(w, reqID, err)
		return
	}

	results, err := scheduler.RunAll(policies, set, s.runOptions(req.Quantum)...)
	if err != nil {
		respondEngineError(w, reqID, err)
		return
	}
	cmp, err := report.Compare(results)
	if err != nil {
		respondEngineError(w, reqID, err)
		return
	}
	resp := compareResponse{Comparison: cmp, Results: results, Rejected: rejected}

	if s.store == nil {
		respondOK(w, reqID, resp)
		return
	}
	for _, res := range results {
		id, err := s.saveRun(r.Context(), req.Label, res)
		if err != nil {
			respondEngineError(w, reqID, err)
			return
		}
		resp.RunIDs = append(resp.RunIDs, id)
	}
	respondCreated(w, reqID, resp)
}

// decode reads a JSON body into v, answering 400 itself on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, reqID string, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		respondError(w, reqID, http.StatusBadRequest, &APIError{
			Code:    ErrValidation,
			Message: fmt.Sprintf("invalid request body: %v", err),
		})
		return false
	}
	return true
}

// buildSet admits the request processes under the configured capacity.
// Processes past the capacity are left out and returned by name.
func (s *Server) buildSet(in []processInput) (*process.Set, []string, error) {
	if len(in) == 0 {
		return nil, nil, fmt.Errorf("%w: no processes supplied", process.ErrEmptyInput)
	}
	set := process.NewSet(s.config.MaxProcesses)
	var rejected []string
	for _, pi := range in {
		priority := process.NoPriority
		if pi.Priority != nil {
			priority = *pi.Priority
		}
		err := set.Add(process.New(pi.Name, pi.ArrivalTime, pi.BurstTime, priority))
		if errors.Is(err, process.ErrCapacityExceeded) {
			rejected = append(rejected, pi.Name)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
	}
	if len(rejected) > 0 {
		s.logger.Warn("request truncated",
			"rejected", len(rejected),
			"max_processes", s.config.MaxProcesses,
		)
	}
	return set, rejected, nil
}

func (s *Server) runOptions(quantum *int64) []scheduler.Option {
	opts := s.config.SchedulerOptions()
	if quantum != nil {
		opts = append(opts, scheduler.WithQuantum(*quantum))
	}
	return append(opts, scheduler.WithLogger(s.logger))
}

func (s *Server) saveRun(ctx context.Context, label string, res *scheduler.Result) (string, error) {
	run, err := store.NewRun(label, res)
	if err != nil {
		return "", err
	}
	if err := s.store.SaveRun(ctx, run); err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}
	s.logger.Info("run saved", "id", run.ID, "policy", run.Policy)
	return run.ID, nil
}
