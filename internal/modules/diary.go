package modules

import (
	"fmt"

	gogenai "github.com/google/generative-ai-go/genai"
)

// DiaryResult is the daily symptom update contract.
type DiaryResult struct {
	Score     int    `json:"score"`
	Diagnosis string `json:"diagnosis"`
	Report    string `json:"report"`
}

func (r *DiaryResult) Validate() error {
	if r.Score < 1 || r.Score > 10 {
		return validationError(fmt.Sprintf("diary score %d is outside 1-10", r.Score))
	}
	if r.Diagnosis == "" || r.Report == "" {
		return validationError("diary response is missing required fields")
	}
	return nil
}

// DiaryEntry is one accumulated history record. Entries are append-only and
// session-scoped.
type DiaryEntry struct {
	Label  string `json:"label"`
	Score  int    `json:"score"`
	Report string `json:"report"`
}

// SeedDiaryHistory returns the demo timeline every new session starts with.
func SeedDiaryHistory() []DiaryEntry {
	return []DiaryEntry{
		{Label: "Mon", Score: 4, Report: "Initial severe pain."},
		{Label: "Tue", Score: 5, Report: "Slight improvement."},
		{Label: "Wed", Score: 6, Report: "Less pain in morning."},
	}
}

// DiaryContext serializes prior entries into the single context string the
// instruction embeds, e.g. "Mon: Score 4; Tue: Score 5".
func DiaryContext(history []DiaryEntry) string {
	ctx := ""
	for i, e := range history {
		if i > 0 {
			ctx += "; "
		}
		ctx += fmt.Sprintf("%s: Score %d", e.Label, e.Score)
	}
	return ctx
}

func diarySpec() *Spec {
	return &Spec{
		Module:         ModuleDiary,
		Title:          "Daily Symptom Diary",
		ExportFilename: "symptom-diary.json",
		Sample: &Sample{
			URL:         "https://images.unsplash.com/photo-1576091160399-112ba8d25d1d?fm=jpg&fit=crop&w=400&q=60",
			Filename:    "patient_checkup.jpg",
			MIMEType:    "image/jpeg",
			PrefillText: "Pain level has decreased significantly today. The redness around the area is fading, and I can move my arm more freely.",
		},
		CheckInput: func(in Input) error {
			return requireMediaOrText(in, "write a note or attach media before logging an update")
		},
		Instruction: func(in Input) string {
			return fmt.Sprintf("Analyze this daily symptom update. Previous Context: %s. Today's Notes: %s. Give an improvement score (1-10, 10 is best), probable diagnosis update, and a doctor summary.", in.Context, in.Text)
		},
		Schema: &gogenai.Schema{
			Type: gogenai.TypeObject,
			Properties: map[string]*gogenai.Schema{
				"score":     {Type: gogenai.TypeInteger, Description: "1-10 health score"},
				"diagnosis": {Type: gogenai.TypeString},
				"report":    {Type: gogenai.TypeString},
			},
			Required: []string{"score", "diagnosis", "report"},
		},
		NewResult: func() any { return &DiaryResult{} },
	}
}
