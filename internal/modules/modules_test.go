package modules

import (
	"strings"
	"testing"

	"github.com/carecompass/platform/internal/analysis"
	"github.com/carecompass/platform/internal/media"
)

func TestParse(t *testing.T) {
	for _, m := range All() {
		parsed, err := Parse(m.String())
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", m, err)
		}
		if parsed != m {
			t.Errorf("Parse(%q) = %q", m, parsed)
		}
	}

	if _, err := Parse("billing"); err == nil {
		t.Error("expected unknown module to be rejected")
	}
	if _, err := Parse(""); err == nil {
		t.Error("expected empty module to be rejected")
	}
}

func TestRegistry_EverySpecIsComplete(t *testing.T) {
	for _, m := range All() {
		spec, ok := SpecFor(m)
		if !ok {
			t.Fatalf("no spec registered for %s", m)
		}
		if spec.Module != m {
			t.Errorf("%s: spec registered under wrong module %s", m, spec.Module)
		}
		if spec.ExportFilename == "" || !strings.HasSuffix(spec.ExportFilename, ".json") {
			t.Errorf("%s: bad export filename %q", m, spec.ExportFilename)
		}
		if spec.CheckInput == nil || spec.Instruction == nil || spec.Schema == nil || spec.NewResult == nil {
			t.Errorf("%s: spec has nil hooks", m)
		}
		if spec.Schema.Required == nil {
			t.Errorf("%s: schema declares no required fields", m)
		}
		if spec.Sample == nil || spec.Sample.URL == "" {
			t.Errorf("%s: no sample source", m)
		}
	}
}

func TestCheckInput_EmptySubmissionRejectedEverywhere(t *testing.T) {
	// No media and no free-text must never reach the backend, for any module.
	for _, m := range All() {
		spec, _ := SpecFor(m)
		err := spec.CheckInput(Input{})
		if err == nil {
			t.Errorf("%s: empty submission accepted", m)
			continue
		}
		if analysis.KindOf(err) != analysis.KindInput {
			t.Errorf("%s: expected input kind, got %s", m, analysis.KindOf(err))
		}
	}
}

func TestCheckInput_ModuleSpecificRules(t *testing.T) {
	img := media.Attachment{Name: "a.jpg", MIMEType: "image/jpeg", Data: []byte("x")}

	tests := []struct {
		name   string
		module Module
		in     Input
		wantOK bool
	}{
		{"triage text only", ModuleTriage, Input{Text: "chest pain"}, true},
		{"triage media only", ModuleTriage, Input{Attachments: []media.Attachment{img}}, true},
		{"queue one image", ModuleQueue, Input{Attachments: []media.Attachment{img}}, true},
		{"queue two images", ModuleQueue, Input{Attachments: []media.Attachment{img, img}}, false},
		{"queue text only", ModuleQueue, Input{Text: "busy"}, false},
		{"medicine needs media", ModuleMedicine, Input{Text: "aspirin"}, false},
		{"medicine with media", ModuleMedicine, Input{Attachments: []media.Attachment{img, img}}, true},
		{"diary notes only", ModuleDiary, Input{Text: "feeling better"}, true},
		{"discharge needs docs", ModuleDischarge, Input{Text: "summary please"}, false},
		{"surgery vitals only", ModuleSurgery, Input{Text: "BP 120/80"}, true},
		{"navigation needs destination", ModuleNavigation, Input{Attachments: []media.Attachment{img}}, false},
		{"navigation complete", ModuleNavigation, Input{Attachments: []media.Attachment{img}, Text: "Radiology"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, _ := SpecFor(tt.module)
			err := spec.CheckInput(tt.in)
			if tt.wantOK && err != nil {
				t.Errorf("unexpected rejection: %v", err)
			}
			if !tt.wantOK && err == nil {
				t.Error("expected rejection")
			}
		})
	}
}

func TestInstruction_EmbedsUserText(t *testing.T) {
	triage, _ := SpecFor(ModuleTriage)
	if got := triage.Instruction(Input{Text: "severe headache"}); !strings.Contains(got, "severe headache") {
		t.Errorf("triage instruction missing symptoms: %q", got)
	}

	nav, _ := SpecFor(ModuleNavigation)
	if got := nav.Instruction(Input{Text: "Radiology Department"}); !strings.Contains(got, "Radiology Department") {
		t.Errorf("navigation instruction missing destination: %q", got)
	}

	diary, _ := SpecFor(ModuleDiary)
	got := diary.Instruction(Input{Text: "less pain", Context: "Mon: Score 4"})
	if !strings.Contains(got, "less pain") || !strings.Contains(got, "Mon: Score 4") {
		t.Errorf("diary instruction missing notes or context: %q", got)
	}
}
