package v1

import (
	"time"

	"go-hiring-assistant/internal/domain"
)

type ConsentRequest struct {
	Accepted *bool `json:"accepted" binding:"required"`
}

type AnswerRequest struct {
	Answer string `json:"answer"`
}

type ClearRequest struct {
	RetainConsent bool `json:"retain_consent"`
}

type SettingsRequest struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	APIKey   string `json:"api_key"`
}

// SettingsView never echoes the session API key back to the browser.
type SettingsView struct {
	Provider     string `json:"provider,omitempty"`
	Model        string `json:"model,omitempty"`
	CustomAPIKey bool   `json:"custom_api_key"`
}

type AnswerView struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

type QuestionView struct {
	Index    int    `json:"index"`
	Total    int    `json:"total"`
	Question string `json:"question"`
}

// SessionView is the client-facing projection of an interview session.
// Expected answer outlines stay server side.
type SessionView struct {
	State           domain.State             `json:"state"`
	Consent         *bool                    `json:"consent"`
	Candidate       *domain.Candidate        `json:"candidate,omitempty"`
	TotalQuestions  int                      `json:"total_questions"`
	CurrentQuestion *QuestionView            `json:"current_question,omitempty"`
	Answers         []AnswerView             `json:"answers"`
	Result          *domain.EvaluationResult `json:"result,omitempty"`
	LastError       string                   `json:"last_error,omitempty"`
	Settings        SettingsView             `json:"settings"`
	LLMConfigured   bool                     `json:"llm_configured"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

func newSessionView(s *domain.Session, llmConfigured bool) SessionView {
	view := SessionView{
		State:          s.State,
		Consent:        s.Consent,
		Candidate:      s.Candidate,
		TotalQuestions: len(s.Questions),
		Answers:        make([]AnswerView, 0, len(s.Answers)),
		Result:         s.Result,
		LastError:      s.LastError,
		Settings: SettingsView{
			Provider:     s.Settings.Provider,
			Model:        s.Settings.Model,
			CustomAPIKey: s.Settings.APIKey != "",
		},
		LLMConfigured: llmConfigured || s.Settings.APIKey != "",
		UpdatedAt:     s.UpdatedAt,
	}
	for _, a := range s.Answers {
		view.Answers = append(view.Answers, AnswerView{Question: a.Question, Answer: a.Answer})
	}
	if q, ok := s.CurrentQuestion(); ok {
		view.CurrentQuestion = &QuestionView{
			Index:    s.CurrentQ,
			Total:    len(s.Questions),
			Question: q.Question,
		}
	}
	return view
}
