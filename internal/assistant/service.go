// Package assistant coordinates module submissions: it owns the per-module
// state machine transitions, the in-flight guard, diary accumulation, and the
// export and sample actions. Handlers stay thin on top of it.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/carecompass/platform/internal/analysis"
	"github.com/carecompass/platform/internal/media"
	"github.com/carecompass/platform/internal/modules"
	"github.com/carecompass/platform/internal/session"
	"github.com/carecompass/platform/pkg/logging"
)

// ErrNoResult is returned when an export is requested for a module without a
// live result.
var ErrNoResult = errors.New("assistant: module has no result to export")

// Service runs module analyses against one session store and one pipeline.
type Service struct {
	pipeline *analysis.Pipeline
	sessions *session.Store
	inflight *session.InflightRegistry
	samples  *media.SampleFetcher
	logger   *logging.Logger

	maxAttachments     int
	maxAttachmentBytes int64
}

// Config wires the service's collaborators.
type Config struct {
	Pipeline           *analysis.Pipeline
	Sessions           *session.Store
	Inflight           *session.InflightRegistry
	Samples            *media.SampleFetcher
	Logger             *logging.Logger
	MaxAttachments     int
	MaxAttachmentBytes int64
}

// NewService creates the orchestration service.
func NewService(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	inflight := cfg.Inflight
	if inflight == nil {
		inflight = session.NewInflightRegistry()
	}
	return &Service{
		pipeline:           cfg.Pipeline,
		sessions:           cfg.Sessions,
		inflight:           inflight,
		samples:            cfg.Samples,
		logger:             logger,
		maxAttachments:     cfg.MaxAttachments,
		maxAttachmentBytes: cfg.MaxAttachmentBytes,
	}
}

// CreateSession starts a fresh session on the landing view.
func (s *Service) CreateSession(ctx context.Context) (*session.State, error) {
	return s.sessions.Create(ctx)
}

// GetSession loads a session.
func (s *Service) GetSession(ctx context.Context, id string) (*session.State, error) {
	return s.sessions.Get(ctx, id)
}

// Navigate switches the session's view. Leaving a module cancels its
// in-flight analysis so a stale response never updates a workspace the user
// already left.
func (s *Service) Navigate(ctx context.Context, sessionID string, view session.View, module modules.Module) (*session.State, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch view {
	case session.ViewLanding:
		// Leaving the dashboard abandons every module workspace, not just the
		// active one.
		s.inflight.CancelAll(sessionID)
		state.NavigateLanding()
	case session.ViewDashboard:
		if state.ActiveModule != "" && state.ActiveModule != module {
			if s.inflight.Cancel(sessionID, state.ActiveModule) {
				s.logger.Info("cancelled in-flight analysis on navigation",
					"session_id", sessionID,
					"module", state.ActiveModule,
				)
			}
		}
		if err := state.NavigateDashboard(module); err != nil {
			return nil, analysis.WrapError(analysis.KindInput, "invalid navigation target", err)
		}
	default:
		return nil, analysis.NewError(analysis.KindInput, fmt.Sprintf("unknown view %q", view))
	}

	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// SubmitRequest is one module submission: attachments in the user's selection
// order plus the module's free-text field.
type SubmitRequest struct {
	SessionID   string
	Module      modules.Module
	Attachments []media.EncodedAttachment
	Text        string
}

// SubmitResponse carries the typed result and, for the diary, the updated
// timeline.
type SubmitResponse struct {
	Module       modules.Module       `json:"module"`
	Result       any                  `json:"result"`
	DiaryHistory []modules.DiaryEntry `json:"diaryHistory,omitempty"`
}

// Submit runs one analysis end to end. All failures come back classified; the
// session records the outcome either way.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	spec, ok := modules.SpecFor(req.Module)
	if !ok {
		return nil, analysis.NewError(analysis.KindInput, fmt.Sprintf("unknown module %q", req.Module))
	}

	state, err := s.sessions.Get(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	attachments, err := media.DecodeAll(req.Attachments, s.maxAttachments, s.maxAttachmentBytes)
	if err != nil {
		return nil, analysis.WrapError(analysis.KindMedia, "could not read attachments", err)
	}

	in := modules.Input{Attachments: attachments, Text: req.Text}
	if req.Module == modules.ModuleDiary {
		in.Context = modules.DiaryContext(state.DiaryHistory)
	}
	if err := spec.CheckInput(in); err != nil {
		return nil, err
	}

	runCtx, done, err := s.inflight.Begin(ctx, req.SessionID, req.Module)
	if err != nil {
		return nil, analysis.WrapError(analysis.KindConflict, "analysis already in progress", err)
	}
	defer done()

	generation := state.BeginSubmission(req.Module)
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}

	result := spec.NewResult()
	runErr := s.pipeline.Run(runCtx, analysis.Task{
		Module:      req.Module.String(),
		Instruction: spec.Instruction(in),
		Schema:      spec.Schema,
	}, attachments, result)

	// Reload before recording the outcome: navigation may have touched the
	// session while the call was out.
	state, err = s.sessions.Get(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	if runErr != nil {
		// Save only when this submission is still current; a superseded
		// failure must never write over a newer submission's state.
		if state.FailSubmission(req.Module, generation, string(analysis.KindOf(runErr)), runErr.Error()) {
			if saveErr := s.sessions.Save(ctx, state); saveErr != nil {
				s.logger.Error("failed to record analysis failure", "session_id", req.SessionID, "error", saveErr)
			}
		}
		return nil, runErr
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("assistant: failed to encode result: %w", err)
	}

	resp := &SubmitResponse{Module: req.Module, Result: result}
	if state.CompleteSubmission(req.Module, generation, raw) {
		if req.Module == modules.ModuleDiary {
			diary := result.(*modules.DiaryResult)
			state.AppendDiaryEntry(modules.DiaryEntry{
				Label:  "Today",
				Score:  diary.Score,
				Report: diary.Report,
			})
			resp.DiaryHistory = state.DiaryHistory
		}
		if err := s.sessions.Save(ctx, state); err != nil {
			return nil, err
		}
	}

	s.logger.Info("analysis completed", "session_id", req.SessionID, "module", req.Module)
	return resp, nil
}

// Export renders a module's live result as a pretty-printed JSON artifact
// with the module's canonical filename. The diary exports its full timeline
// alongside the latest report.
func (s *Service) Export(ctx context.Context, sessionID string, module modules.Module) (string, []byte, error) {
	spec, ok := modules.SpecFor(module)
	if !ok {
		return "", nil, analysis.NewError(analysis.KindInput, fmt.Sprintf("unknown module %q", module))
	}

	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}
	ms := state.Module(module)

	var payload any
	switch module {
	case modules.ModuleDiary:
		var latest json.RawMessage
		if ms.Phase == session.PhaseSucceeded {
			latest = ms.Result
		}
		payload = struct {
			History      []modules.DiaryEntry `json:"history"`
			LatestReport json.RawMessage      `json:"latestReport"`
		}{History: state.DiaryHistory, LatestReport: latest}
	default:
		if ms.Phase != session.PhaseSucceeded || ms.Result == nil {
			return "", nil, ErrNoResult
		}
		payload = ms.Result
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("assistant: failed to render export: %w", err)
	}
	return spec.ExportFilename, data, nil
}

// Sample fetches a module's fixed demo media and returns it in the same wire
// form an upload uses, plus any prefilled text.
func (s *Service) Sample(ctx context.Context, module modules.Module) (media.EncodedAttachment, string, error) {
	spec, ok := modules.SpecFor(module)
	if !ok || spec.Sample == nil {
		return media.EncodedAttachment{}, "", analysis.NewError(analysis.KindInput, fmt.Sprintf("no sample available for %q", module))
	}

	attachment, err := s.samples.Fetch(ctx, spec.Sample.URL, spec.Sample.Filename, spec.Sample.MIMEType)
	if err != nil {
		return media.EncodedAttachment{}, "", analysis.WrapError(analysis.KindMedia, "failed to fetch sample", err)
	}
	return media.Encode(attachment), spec.Sample.PrefillText, nil
}
