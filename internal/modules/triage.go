package modules

import (
	"fmt"

	gogenai "github.com/google/generative-ai-go/genai"
)

// TriageResult is the ER triage contract. Field names and the priority enum
// are part of the wire contract with the backend.
type TriageResult struct {
	Severity    string   `json:"severity"`
	Condition   string   `json:"condition"`
	Steps       []string `json:"steps"`
	Priority    string   `json:"priority"`
	VisitNeeded bool     `json:"visitNeeded"`
	Explanation string   `json:"explanation"`
}

func (r *TriageResult) Validate() error {
	if r.Severity == "" || r.Condition == "" || r.Explanation == "" {
		return validationError("triage response is missing required fields")
	}
	if len(r.Steps) == 0 {
		return validationError("triage response has no first aid steps")
	}
	switch r.Priority {
	case "Red", "Yellow", "Green":
	default:
		return validationError(fmt.Sprintf("triage priority %q is not one of Red/Yellow/Green", r.Priority))
	}
	return nil
}

func triageSpec() *Spec {
	return &Spec{
		Module:         ModuleTriage,
		Title:          "ER Triage",
		ExportFilename: "triage-report.json",
		Sample: &Sample{
			URL:      "https://images.unsplash.com/photo-1584518969469-c2d99c7760a0?fm=jpg&fit=crop&w=400&q=60",
			Filename: "injury_sample.jpg",
			MIMEType: "image/jpeg",
		},
		CheckInput: func(in Input) error {
			return requireMediaOrText(in, "describe symptoms or attach media before submitting")
		},
		Instruction: func(in Input) string {
			return fmt.Sprintf("You are an expert ER doctor assistant. Analyze these symptoms/images for ER Triage. Symptoms: %s. Provide severity, condition, first aid steps, priority (Red/Yellow/Green), and if a visit is needed. Be helpful and calm.", in.Text)
		},
		Schema: &gogenai.Schema{
			Type: gogenai.TypeObject,
			Properties: map[string]*gogenai.Schema{
				"severity":    {Type: gogenai.TypeString},
				"condition":   {Type: gogenai.TypeString},
				"steps":       stringArraySchema(),
				"priority":    {Type: gogenai.TypeString, Enum: []string{"Red", "Yellow", "Green"}},
				"visitNeeded": {Type: gogenai.TypeBoolean},
				"explanation": {Type: gogenai.TypeString},
			},
			Required: []string{"severity", "condition", "steps", "priority", "visitNeeded", "explanation"},
		},
		NewResult: func() any { return &TriageResult{} },
	}
}
