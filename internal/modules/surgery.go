package modules

import (
	"fmt"
	"strings"
	"unicode"

	gogenai "github.com/google/generative-ai-go/genai"
)

// RiskFactor is one named contributor to surgical risk with a 1-10 impact.
type RiskFactor struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// SurgeryResult is the pre-surgical risk assessment contract.
type SurgeryResult struct {
	RiskScore   int          `json:"riskScore"`
	Analysis    string       `json:"analysis"`
	Checklist   []string     `json:"checklist"`
	Guidelines  []string     `json:"guidelines"`
	RiskFactors []RiskFactor `json:"riskFactors"`
}

// Normalize re-spaces risk factor names. The instruction asks the backend for
// spaced names, but the ask is not always honored, so "AdvancedAge" still
// becomes "Advanced Age" before display.
func (r *SurgeryResult) Normalize() {
	for i := range r.RiskFactors {
		r.RiskFactors[i].Name = SpaceFactorName(r.RiskFactors[i].Name)
	}
}

func (r *SurgeryResult) Validate() error {
	if r.RiskScore < 0 || r.RiskScore > 100 {
		return validationError(fmt.Sprintf("surgical risk score %d is outside 0-100", r.RiskScore))
	}
	if r.Analysis == "" {
		return validationError("surgical risk response is missing an analysis")
	}
	return nil
}

// SpaceFactorName converts identifier-style names to spaced words, collapsing
// any double spaces the insertion produces.
func SpaceFactorName(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) && runes[i-1] != ' ' {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	spaced := strings.TrimSpace(b.String())
	for strings.Contains(spaced, "  ") {
		spaced = strings.ReplaceAll(spaced, "  ", " ")
	}
	return spaced
}

func surgerySpec() *Spec {
	return &Spec{
		Module:         ModuleSurgery,
		Title:          "Surgical Risk",
		ExportFilename: "surgical-risk-assessment.json",
		Sample: &Sample{
			URL:      "https://images.unsplash.com/photo-1532187863486-abf9dbad1b69?fm=jpg&fit=crop&w=400&q=60",
			Filename: "medical_report.jpg",
			MIMEType: "image/jpeg",
		},
		CheckInput: func(in Input) error {
			return requireMediaOrText(in, "provide vitals/history text or attach reports before submitting")
		},
		Instruction: func(in Input) string {
			return fmt.Sprintf("Analyze these medical reports and vitals for surgical risk. Vitals: %s. Calculate risk score, provide analysis, 7-day checklist, safety guidelines, and breakdown risk factors. IMPORTANT: Return 'riskFactors.name' with proper spacing (e.g. 'Advanced Age', 'Type 2 Diabetes') and NOT CamelCase.", in.Text)
		},
		Schema: &gogenai.Schema{
			Type: gogenai.TypeObject,
			Properties: map[string]*gogenai.Schema{
				"riskScore":  {Type: gogenai.TypeInteger, Description: "0-100"},
				"analysis":   {Type: gogenai.TypeString},
				"checklist":  stringArraySchema(),
				"guidelines": stringArraySchema(),
				"riskFactors": {
					Type: gogenai.TypeArray,
					Items: &gogenai.Schema{
						Type: gogenai.TypeObject,
						Properties: map[string]*gogenai.Schema{
							"name":  {Type: gogenai.TypeString},
							"value": {Type: gogenai.TypeInteger, Description: "1-10 impact"},
						},
					},
				},
			},
			Required: []string{"riskScore", "analysis", "checklist", "guidelines", "riskFactors"},
		},
		NewResult: func() any { return &SurgeryResult{} },
	}
}
