package modules

import (
	gogenai "github.com/google/generative-ai-go/genai"
)

// MedicineResult is the pill/prescription interaction check contract.
type MedicineResult struct {
	Medicines    []string `json:"medicines"`
	Interactions []string `json:"interactions"`
	Schedule     string   `json:"schedule"`
	Warnings     []string `json:"warnings"`
}

// Validate rejects responses that identified nothing at all: a reply with
// neither medicines nor interactions means the backend could not read the
// image and must not render as an empty safety report.
func (r *MedicineResult) Validate() error {
	if len(r.Medicines) == 0 && len(r.Interactions) == 0 {
		return validationError("invalid response: no medicines or interactions identified")
	}
	return nil
}

func medicineSpec() *Spec {
	return &Spec{
		Module:         ModuleMedicine,
		Title:          "Medicine Clash Detector",
		ExportFilename: "medicine-safety-report.json",
		Sample: &Sample{
			URL:      "https://images.unsplash.com/photo-1587854692152-cbe660dbde88?fm=jpg&fit=crop&w=400&q=60",
			Filename: "pills_sample.jpg",
			MIMEType: "image/jpeg",
		},
		CheckInput: func(in Input) error {
			if len(in.Attachments) == 0 {
				return inputError("attach at least one photo of pills or prescriptions")
			}
			return nil
		},
		Instruction: func(Input) string {
			return "You are a helpful pharmacist. Identify the medicines in this image. 1. List the medicine names. 2. Check for ANY dangerous interactions between them. 3. Suggest a safe daily schedule (e.g. morning/night). 4. List important warnings (drowsiness, etc). If no medicines are clear, say 'Unclear' in the list."
		},
		Schema: &gogenai.Schema{
			Type: gogenai.TypeObject,
			Properties: map[string]*gogenai.Schema{
				"medicines":    stringArraySchema(),
				"interactions": stringArraySchema(),
				"schedule":     {Type: gogenai.TypeString},
				"warnings":     stringArraySchema(),
			},
			Required: []string{"medicines", "interactions", "schedule", "warnings"},
		},
		NewResult: func() any { return &MedicineResult{} },
	}
}
