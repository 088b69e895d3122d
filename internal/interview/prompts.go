package interview

import (
	"encoding/json"
	"fmt"
	"strings"

	"go-hiring-assistant/internal/domain"
)

const (
	AssistantSystemPrompt = "You are TalentScout Assistant. ONLY return valid JSON, no explanations."
	EvaluatorSystemPrompt = "You are an interviewer evaluator. ONLY return valid JSON, no explanations."
)

const generationFormat = `{
  "questions": [
    {"question": "...", "expected_answer_outline": "..."}
  ]
}`

const evaluationFormat = `{
  "results": [
    {"question": "...", "score": 7, "feedback": "..."}
  ],
  "final_average_score": 8
}`

// promptCandidate is the view of a candidate shared with the completion service.
// Contact details are left out.
type promptCandidate struct {
	YearsExp          int                       `json:"years_exp"`
	DesiredPositions  []string                  `json:"desired_positions"`
	Location          string                    `json:"location"`
	TechStack         []string                  `json:"tech_stack"`
	PreferredLocation string                    `json:"preferred_location,omitempty"`
	Fresher           *domain.FresherDetails    `json:"fresher,omitempty"`
	Experience        *domain.ExperienceDetails `json:"experience,omitempty"`
}

// GenerationPrompt asks for count technical questions tailored to the candidate.
func GenerationPrompt(c domain.Candidate, count int) string {
	view := promptCandidate{
		YearsExp:          c.YearsExp,
		DesiredPositions:  c.DesiredPositions,
		Location:          c.Location,
		TechStack:         c.TechStack,
		PreferredLocation: c.PreferredLocation,
		Fresher:           c.Fresher,
		Experience:        c.Experience,
	}
	candidateJSON, _ := json.MarshalIndent(view, "", "  ")

	var sb strings.Builder
	fmt.Fprintf(&sb, "Candidate: %s\n\n", candidateJSON)
	fmt.Fprintf(&sb, "Generate ONLY %d technical interview questions TOTAL.\n", count)
	sb.WriteString("Base them on the candidate's tech stack and desired positions.\n")
	sb.WriteString("Return STRICT JSON ONLY in this format:\n")
	sb.WriteString(generationFormat)
	return sb.String()
}

// EvaluationPrompt asks for a 1-10 score and feedback per answer plus an average.
func EvaluationPrompt(answers []domain.Answer) string {
	answersJSON, _ := json.MarshalIndent(answers, "", "  ")

	var sb strings.Builder
	sb.WriteString("Evaluate the following answers. Score each (1-10) + give feedback.\n")
	sb.WriteString("Grade each answer against its expected_answer_outline when one is given.\n")
	sb.WriteString("Also return a final average score.\n")
	sb.Write(answersJSON)
	sb.WriteString("\n\nJSON Format:\n")
	sb.WriteString(evaluationFormat)
	return sb.String()
}
