package interview

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"go-hiring-assistant/internal/domain"
)

var errNoJSONObject = errors.New("no JSON object found in response")

// decodeTolerant parses raw as JSON into v. When the trimmed text is not valid
// JSON it retries on the span from the first '{' to the last '}', which also
// discards prose and markdown fences around the payload.
func decodeTolerant(raw string, v interface{}) error {
	text := strings.TrimSpace(raw)

	strictErr := json.Unmarshal([]byte(text), v)
	if strictErr == nil {
		return nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return &domain.ResponseParseError{Raw: raw, Err: errNoJSONObject}
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), v); err != nil {
		return &domain.ResponseParseError{Raw: raw, Err: err}
	}
	return nil
}

// ParseGeneration extracts interview questions from a completion response,
// keeping at most max entries.
func ParseGeneration(raw string, max int) (domain.GenerationResult, error) {
	var payload domain.GenerationResult
	if err := decodeTolerant(raw, &payload); err != nil {
		return domain.GenerationResult{}, err
	}

	questions := make([]domain.Question, 0, len(payload.Questions))
	for _, q := range payload.Questions {
		q.Question = strings.TrimSpace(q.Question)
		q.ExpectedAnswerOutline = strings.TrimSpace(q.ExpectedAnswerOutline)
		if q.Question == "" {
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return domain.GenerationResult{}, &domain.ResponseParseError{
			Raw: raw,
			Err: errors.New("response contains no questions"),
		}
	}
	if max > 0 && len(questions) > max {
		questions = questions[:max]
	}

	return domain.GenerationResult{Questions: questions}, nil
}

// evaluationPayload keeps numeric fields raw; models send numbers, numeric
// strings and placeholders like "N/A".
type evaluationPayload struct {
	Results []struct {
		Question string          `json:"question"`
		Score    json.RawMessage `json:"score"`
		Feedback string          `json:"feedback"`
	} `json:"results"`
	FinalAverageScore json.RawMessage `json:"final_average_score"`
}

// ParseEvaluation extracts per-question scores and the final average. Scores are
// clamped to 1..10 and a missing average is computed from the item scores.
func ParseEvaluation(raw string) (domain.EvaluationResult, error) {
	var payload evaluationPayload
	if err := decodeTolerant(raw, &payload); err != nil {
		return domain.EvaluationResult{}, err
	}
	avg, hasAvg := parseNumber(payload.FinalAverageScore)
	if len(payload.Results) == 0 && !hasAvg {
		return domain.EvaluationResult{}, &domain.ResponseParseError{
			Raw: raw,
			Err: errors.New("response contains no evaluation results"),
		}
	}

	result := domain.EvaluationResult{Results: make([]domain.QuestionScore, 0, len(payload.Results))}
	total := 0
	for _, r := range payload.Results {
		score := clampScore(r.Score)
		total += score
		result.Results = append(result.Results, domain.QuestionScore{
			Question: strings.TrimSpace(r.Question),
			Score:    score,
			Feedback: strings.TrimSpace(r.Feedback),
		})
	}

	if hasAvg {
		result.FinalAverageScore = avg
	} else {
		result.FinalAverageScore = math.Round(float64(total)/float64(len(result.Results))*100) / 100
	}

	return result, nil
}

// parseNumber reads a JSON number or a numeric string.
func parseNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// clampScore maps anything unreadable to the lowest score.
func clampScore(raw json.RawMessage) int {
	f, ok := parseNumber(raw)
	if !ok {
		return 1
	}
	score := int(math.Round(f))
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}
