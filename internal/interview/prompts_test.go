package interview_test

import (
	"testing"

	"go-hiring-assistant/internal/domain"
	"go-hiring-assistant/internal/interview"

	"github.com/stretchr/testify/assert"
)

func TestGenerationPrompt(t *testing.T) {
	c := validCandidate().Normalize()

	prompt := interview.GenerationPrompt(c, 2)

	assert.Contains(t, prompt, "Generate ONLY 2 technical interview questions TOTAL.")
	assert.Contains(t, prompt, `"tech_stack": [`)
	assert.Contains(t, prompt, `"expected_answer_outline"`)
	assert.NotContains(t, prompt, "asha@example.com")
	assert.NotContains(t, prompt, "9876543210")
}

func TestEvaluationPrompt(t *testing.T) {
	prompt := interview.EvaluationPrompt([]domain.Answer{{Question: "Q1", Answer: "A1", ExpectedAnswerOutline: "mentions M:N scheduling"}})

	assert.Contains(t, prompt, "Score each (1-10)")
	assert.Contains(t, prompt, "expected_answer_outline")
	assert.Contains(t, prompt, `"q": "Q1"`)
	assert.Contains(t, prompt, `"a": "A1"`)
	assert.Contains(t, prompt, `"expected_answer_outline": "mentions M:N scheduling"`)
	assert.Contains(t, prompt, `"final_average_score"`)
}

func TestMaxQuestionsForFlow(t *testing.T) {
	assert.Equal(t, 2, interview.MaxQuestionsForFlow("minimal"))
	assert.Equal(t, 2, interview.MaxQuestionsForFlow("MINIMAL"))
	assert.Equal(t, 5, interview.MaxQuestionsForFlow("standard"))
	assert.Equal(t, 5, interview.MaxQuestionsForFlow(""))
}
