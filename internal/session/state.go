package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/carecompass/platform/internal/modules"
)

// View is the top level of the navigation union: the entry screen or the
// module workspace. A dashboard view always carries an active module.
type View string

const (
	ViewLanding   View = "landing"
	ViewDashboard View = "dashboard"
)

// Phase is one module's async submission state.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhasePending   Phase = "pending"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
)

// ModuleState holds one module's private workspace state. At most one live
// result exists per module; a new submission clears it before the replacement
// arrives.
type ModuleState struct {
	Phase      Phase           `json:"phase"`
	Result     json.RawMessage `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
	ErrorKind  string          `json:"errorKind,omitempty"`
	Generation uint64          `json:"generation"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// State is one browser session: navigation position, per-module workspaces,
// and the diary's accumulated timeline. Session-scoped only; it lives in
// Redis under a TTL and is never merged, only replaced.
type State struct {
	ID           string                          `json:"id"`
	View         View                            `json:"view"`
	ActiveModule modules.Module                  `json:"activeModule,omitempty"`
	Modules      map[modules.Module]*ModuleState `json:"modules"`
	DiaryHistory []modules.DiaryEntry            `json:"diaryHistory"`
	CreatedAt    time.Time                       `json:"createdAt"`
	UpdatedAt    time.Time                       `json:"updatedAt"`
}

// NewState builds a fresh session on the landing view with every module idle
// and the diary seeded with its demo timeline.
func NewState(id string) *State {
	now := time.Now().UTC()
	moduleStates := make(map[modules.Module]*ModuleState, len(modules.All()))
	for _, m := range modules.All() {
		moduleStates[m] = &ModuleState{Phase: PhaseIdle, UpdatedAt: now}
	}
	return &State{
		ID:           id,
		View:         ViewLanding,
		Modules:      moduleStates,
		DiaryHistory: modules.SeedDiaryHistory(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Module returns the workspace for m, creating an idle one if the stored
// session predates the module.
func (s *State) Module(m modules.Module) *ModuleState {
	ms, ok := s.Modules[m]
	if !ok {
		ms = &ModuleState{Phase: PhaseIdle, UpdatedAt: time.Now().UTC()}
		s.Modules[m] = ms
	}
	return ms
}

// NavigateLanding moves the session to the entry screen.
func (s *State) NavigateLanding() {
	s.View = ViewLanding
	s.ActiveModule = ""
	s.UpdatedAt = time.Now().UTC()
}

// NavigateDashboard activates a module workspace.
func (s *State) NavigateDashboard(m modules.Module) error {
	if _, ok := modules.SpecFor(m); !ok {
		return fmt.Errorf("session: unknown module %q", m)
	}
	s.View = ViewDashboard
	s.ActiveModule = m
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// BeginSubmission transitions a module to pending, clearing the previous
// result and error immediately so a stale result is never shown next to new
// inputs. Returns the generation token the completion must present.
func (s *State) BeginSubmission(m modules.Module) uint64 {
	ms := s.Module(m)
	ms.Phase = PhasePending
	ms.Result = nil
	ms.Error = ""
	ms.ErrorKind = ""
	ms.Generation++
	ms.UpdatedAt = time.Now().UTC()
	s.UpdatedAt = ms.UpdatedAt
	return ms.Generation
}

// CompleteSubmission records a success, ignored when a newer submission has
// already superseded this generation.
func (s *State) CompleteSubmission(m modules.Module, generation uint64, result json.RawMessage) bool {
	ms := s.Module(m)
	if ms.Generation != generation {
		return false
	}
	ms.Phase = PhaseSucceeded
	ms.Result = result
	ms.Error = ""
	ms.ErrorKind = ""
	ms.UpdatedAt = time.Now().UTC()
	s.UpdatedAt = ms.UpdatedAt
	return true
}

// FailSubmission records a failure, ignored when superseded.
func (s *State) FailSubmission(m modules.Module, generation uint64, kind, message string) bool {
	ms := s.Module(m)
	if ms.Generation != generation {
		return false
	}
	ms.Phase = PhaseFailed
	ms.Result = nil
	ms.Error = message
	ms.ErrorKind = kind
	ms.UpdatedAt = time.Now().UTC()
	s.UpdatedAt = ms.UpdatedAt
	return true
}

// AppendDiaryEntry adds one history record. Entries are insertion-ordered and
// never removed or reordered.
func (s *State) AppendDiaryEntry(e modules.DiaryEntry) {
	s.DiaryHistory = append(s.DiaryHistory, e)
	s.UpdatedAt = time.Now().UTC()
}
