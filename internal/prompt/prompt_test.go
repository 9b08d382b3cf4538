package prompt

import (
	"testing"

	"AJY_Stylist/internal/config"
	"AJY_Stylist/internal/locale"

	"github.com/stretchr/testify/assert"
)

func TestAnalysisPrompt(t *testing.T) {
	en := AnalysisPrompt(locale.English, "male", "180", "75")
	assert.Contains(t, en, "- Gender: Male")
	assert.Contains(t, en, "- Height: 180cm")
	assert.Contains(t, en, "- Weight: 75kg")

	ko := AnalysisPrompt(locale.Korean, "female", "165", "50")
	assert.Contains(t, ko, "- 성별: 여성")
	assert.Contains(t, ko, "- 키: 165cm")
	assert.Contains(t, ko, "- 몸무게: 50kg")
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Gender Female, Height 170cm, Weight 60kg", UserMessage(locale.English, "other", "170", "60"))
	assert.Equal(t, "성별 남성, 키 175, 몸무게 70", UserMessage(locale.Korean, "male", "175", "70"))
}

func TestImageFields(t *testing.T) {
	fields := ImageFields(config.ImageConfig{
		Model:         "gpt-image-1.5",
		N:             1,
		Size:          "1024x1024",
		Quality:       "auto",
		InputFidelity: "high",
	})

	assert.Equal(t, []FormField{
		{"model", "gpt-image-1.5"},
		{"n", "1"},
		{"size", "1024x1024"},
		{"quality", "auto"},
		{"input_fidelity", "high"},
	}, fields)
}
