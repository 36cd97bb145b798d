package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpaceFactorName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"AdvancedAge", "Advanced Age"},
		{"Type2Diabetes", "Type2 Diabetes"},
		{"Advanced Age", "Advanced Age"},
		{"highBloodPressure", "high Blood Pressure"},
		{"BMI", "BMI"},
		{"", ""},
	}

	for _, tt := range tests {
		got := SpaceFactorName(tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.NotContains(t, got, "  ", "no double spaces for %q", tt.in)
	}
}

func TestSurgeryResult_Normalize(t *testing.T) {
	r := &SurgeryResult{
		RiskScore: 40,
		Analysis:  "Elevated but manageable.",
		RiskFactors: []RiskFactor{
			{Name: "AdvancedAge", Value: 7},
			{Name: "Smoking History", Value: 5},
		},
	}

	r.Normalize()

	assert.Equal(t, "Advanced Age", r.RiskFactors[0].Name)
	assert.Equal(t, "Smoking History", r.RiskFactors[1].Name)
}

func TestSurgeryResult_Validate(t *testing.T) {
	assert.NoError(t, (&SurgeryResult{RiskScore: 0, Analysis: "Low risk."}).Validate())
	assert.Error(t, (&SurgeryResult{RiskScore: 101, Analysis: "x"}).Validate())
	assert.Error(t, (&SurgeryResult{RiskScore: 50}).Validate(), "missing analysis")
}
