package modules

import (
	"fmt"

	gogenai "github.com/google/generative-ai-go/genai"
)

// NavigationResult is the indoor wayfinding contract.
type NavigationResult struct {
	Location     string `json:"location"`
	Route        string `json:"route"`
	DistanceTime string `json:"distanceTime"`
	Delays       string `json:"delays"`
}

// Validate treats a missing location as failure: without a recognized
// starting point the rest of the route is guesswork, not a partial success.
func (r *NavigationResult) Validate() error {
	if r.Location == "" {
		return validationError("could not identify the location; try a clearer image")
	}
	if r.Route == "" {
		return validationError("navigation response is missing a route")
	}
	return nil
}

func navigationSpec() *Spec {
	return &Spec{
		Module:         ModuleNavigation,
		Title:          "Indoor Navigation",
		ExportFilename: "navigation-route.json",
		Sample: &Sample{
			URL:         "https://images.unsplash.com/photo-1519494026892-80bbd2d6fd0d?fm=jpg&fit=crop&w=400&q=60",
			Filename:    "hospital_hallway.jpg",
			MIMEType:    "image/jpeg",
			PrefillText: "Radiology Department",
		},
		CheckInput: func(in Input) error {
			if len(in.Attachments) != 1 {
				return inputError("attach exactly one photo of a sign or map")
			}
			if in.Text == "" {
				return inputError("enter a destination")
			}
			return nil
		},
		Instruction: func(in Input) string {
			return fmt.Sprintf("I am at the location shown in the image. I want to go to: %s. Identify where I am, suggest a route, time estimate, and potential crowd delays.", in.Text)
		},
		Schema: &gogenai.Schema{
			Type: gogenai.TypeObject,
			Properties: map[string]*gogenai.Schema{
				"location":     {Type: gogenai.TypeString},
				"route":        {Type: gogenai.TypeString},
				"distanceTime": {Type: gogenai.TypeString},
				"delays":       {Type: gogenai.TypeString},
			},
			Required: []string{"location", "route", "distanceTime", "delays"},
		},
		NewResult: func() any { return &NavigationResult{} },
	}
}
