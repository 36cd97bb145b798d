package modules

import (
	gogenai "github.com/google/generative-ai-go/genai"
)

// DischargeResult is the plain-language discharge summary contract.
type DischargeResult struct {
	Summary     string   `json:"summary"`
	Medicines   []string `json:"medicines"`
	Reminders   []string `json:"reminders"`
	DangerSigns []string `json:"dangerSigns"`
}

func (r *DischargeResult) Validate() error {
	if r.Summary == "" {
		return validationError("discharge response is missing a summary")
	}
	return nil
}

func dischargeSpec() *Spec {
	return &Spec{
		Module:         ModuleDischarge,
		Title:          "Discharge Explainer",
		ExportFilename: "simplified-discharge-summary.json",
		Sample: &Sample{
			URL:      "https://images.unsplash.com/photo-1618005182384-a83a8bd57fbe?fm=jpg&fit=crop&w=400&q=60",
			Filename: "discharge_doc.jpg",
			MIMEType: "image/jpeg",
		},
		CheckInput: func(in Input) error {
			if len(in.Attachments) == 0 {
				return inputError("attach at least one discharge document image or PDF")
			}
			return nil
		},
		Instruction: func(Input) string {
			return "Read this hospital discharge document. Simplify terms for a 5th grader. List meds, create simple reminders, and highlight danger signs clearly."
		},
		Schema: &gogenai.Schema{
			Type: gogenai.TypeObject,
			Properties: map[string]*gogenai.Schema{
				"summary":     {Type: gogenai.TypeString},
				"medicines":   stringArraySchema(),
				"reminders":   stringArraySchema(),
				"dangerSigns": stringArraySchema(),
			},
			Required: []string{"summary", "medicines", "reminders", "dangerSigns"},
		},
		NewResult: func() any { return &DischargeResult{} },
	}
}
