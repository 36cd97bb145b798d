// Package modules declares the seven task workflows as data: instruction
// builders, response schemas, result types, preconditions, and export/sample
// sources. The shared pipeline in internal/analysis runs them; nothing here
// talks to the network.
package modules

import (
	"fmt"

	gogenai "github.com/google/generative-ai-go/genai"

	"github.com/carecompass/platform/internal/analysis"
	"github.com/carecompass/platform/internal/media"
)

// Module identifies one of the seven task workflows. The set is closed:
// anything else is rejected at the HTTP boundary.
type Module string

const (
	ModuleTriage     Module = "triage"
	ModuleQueue      Module = "queue"
	ModuleMedicine   Module = "medicine"
	ModuleDiary      Module = "diary"
	ModuleDischarge  Module = "discharge"
	ModuleSurgery    Module = "surgery"
	ModuleNavigation Module = "navigation"
)

// All returns the modules in their dashboard order.
func All() []Module {
	return []Module{
		ModuleTriage,
		ModuleQueue,
		ModuleMedicine,
		ModuleDiary,
		ModuleDischarge,
		ModuleSurgery,
		ModuleNavigation,
	}
}

// Parse validates a module name from the wire.
func Parse(s string) (Module, error) {
	m := Module(s)
	if _, ok := registry[m]; !ok {
		return "", fmt.Errorf("modules: unknown module %q", s)
	}
	return m, nil
}

func (m Module) String() string { return string(m) }

// Input carries everything a user can submit to a module: attachments in
// selection order, the module's free-text field, and optional prior-session
// context (the diary's serialized history).
type Input struct {
	Attachments []media.Attachment
	Text        string
	Context     string
}

// Sample describes a module's fixed remote demo media plus any text the
// sample action prefills.
type Sample struct {
	URL         string
	Filename    string
	MIMEType    string
	PrefillText string
}

// Spec is one module's complete contract with the inference backend.
type Spec struct {
	Module         Module
	Title          string
	ExportFilename string
	Sample         *Sample

	// CheckInput enforces the module's submit precondition; failures carry
	// analysis.KindInput and never reach the backend.
	CheckInput func(in Input) error
	// Instruction renders the fixed task framing with the user's text fields.
	Instruction func(in Input) string
	// Schema is the declared output shape requested from the backend.
	Schema *gogenai.Schema
	// NewResult allocates the typed record the response decodes into.
	NewResult func() any
}

var registry = map[Module]*Spec{
	ModuleTriage:     triageSpec(),
	ModuleQueue:      queueSpec(),
	ModuleMedicine:   medicineSpec(),
	ModuleDiary:      diarySpec(),
	ModuleDischarge:  dischargeSpec(),
	ModuleSurgery:    surgerySpec(),
	ModuleNavigation: navigationSpec(),
}

// SpecFor returns the registered spec for a module.
func SpecFor(m Module) (*Spec, bool) {
	s, ok := registry[m]
	return s, ok
}

func inputError(msg string) error {
	return analysis.NewError(analysis.KindInput, msg)
}

func validationError(msg string) error {
	return analysis.NewError(analysis.KindValidation, msg)
}

func requireMediaOrText(in Input, msg string) error {
	if len(in.Attachments) == 0 && in.Text == "" {
		return inputError(msg)
	}
	return nil
}

func stringArraySchema() *gogenai.Schema {
	return &gogenai.Schema{
		Type:  gogenai.TypeArray,
		Items: &gogenai.Schema{Type: gogenai.TypeString},
	}
}
