package modules

import (
	gogenai "github.com/google/generative-ai-go/genai"
)

// QueueResult is the waiting-room crowd estimation contract.
type QueueResult struct {
	PatientCount     int    `json:"patientCount"`
	WaitTimeMinutes  int    `json:"waitTimeMinutes"`
	LowTrafficWindow string `json:"lowTrafficWindow"`
	CrowdStatus      string `json:"crowdStatus"`
}

func (r *QueueResult) Validate() error {
	if r.LowTrafficWindow == "" || r.CrowdStatus == "" {
		return validationError("queue response is missing required fields")
	}
	if r.PatientCount < 0 || r.WaitTimeMinutes < 0 {
		return validationError("queue response has negative estimates")
	}
	return nil
}

func queueSpec() *Spec {
	return &Spec{
		Module:         ModuleQueue,
		Title:          "Queue Predictor",
		ExportFilename: "queue-analysis.json",
		Sample: &Sample{
			URL:      "https://images.unsplash.com/photo-1516321497487-e288fb19713f?fm=jpg&fit=crop&w=400&q=60",
			Filename: "waiting_room.jpg",
			MIMEType: "image/jpeg",
		},
		CheckInput: func(in Input) error {
			if len(in.Attachments) != 1 {
				return inputError("queue prediction needs exactly one crowd-scene image")
			}
			return nil
		},
		Instruction: func(Input) string {
			return "Analyze this image of a waiting room. Estimate patient count, wait time in minutes, suggest a low traffic window, and describe crowd status."
		},
		Schema: &gogenai.Schema{
			Type: gogenai.TypeObject,
			Properties: map[string]*gogenai.Schema{
				"patientCount":     {Type: gogenai.TypeInteger},
				"waitTimeMinutes":  {Type: gogenai.TypeInteger},
				"lowTrafficWindow": {Type: gogenai.TypeString},
				"crowdStatus":      {Type: gogenai.TypeString},
			},
			Required: []string{"patientCount", "waitTimeMinutes", "lowTrafficWindow", "crowdStatus"},
		},
		NewResult: func() any { return &QueueResult{} },
	}
}
