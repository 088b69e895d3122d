package domain

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"time"
)

type State string

const (
	StateAwaitingConsent State = "awaiting_consent"
	StateAwaitingForm    State = "awaiting_form"
	StateAskingQuestions State = "asking_questions"
	StateEvaluating      State = "evaluating"
	StateDone            State = "done"
	StateDeclined        State = "declined"
)

type Question struct {
	Question              string `json:"question"`
	ExpectedAnswerOutline string `json:"expected_answer_outline"`
}

// Answer pairs a generated question with the candidate's response. The outline
// travels with the answer so the evaluator can grade against it.
type Answer struct {
	Question              string `json:"q"`
	Answer                string `json:"a"`
	ExpectedAnswerOutline string `json:"expected_answer_outline,omitempty"`
}

type QuestionScore struct {
	Question string `json:"question"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

type EvaluationResult struct {
	Results           []QuestionScore `json:"results"`
	FinalAverageScore float64         `json:"final_average_score"`
}

type GenerationResult struct {
	Questions []Question `json:"questions"`
}

// Settings overrides the environment provider configuration for one session.
type Settings struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
}

// Session is the per-browser interview aggregate.
type Session struct {
	ID        string            `json:"id"`
	Consent   *bool             `json:"consent"`
	State     State             `json:"state"`
	Candidate *Candidate        `json:"candidate,omitempty"`
	Questions []Question        `json:"questions"`
	CurrentQ  int               `json:"current_q"`
	Answers   []Answer          `json:"answers"`
	Result    *EvaluationResult `json:"result,omitempty"`
	LastError string            `json:"last_error,omitempty"`
	Settings  Settings          `json:"settings"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		State:     StateAwaitingConsent,
		Questions: []Question{},
		Answers:   []Answer{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy so callers can mutate it without touching the original.
func (s Session) Clone() Session {
	out := s
	if s.Consent != nil {
		v := *s.Consent
		out.Consent = &v
	}
	if s.Candidate != nil {
		c := *s.Candidate
		c.DesiredPositions = slices.Clone(s.Candidate.DesiredPositions)
		c.TechStack = slices.Clone(s.Candidate.TechStack)
		if s.Candidate.Fresher != nil {
			f := *s.Candidate.Fresher
			c.Fresher = &f
		}
		if s.Candidate.Experience != nil {
			e := *s.Candidate.Experience
			c.Experience = &e
		}
		out.Candidate = &c
	}
	out.Questions = slices.Clone(s.Questions)
	out.Answers = slices.Clone(s.Answers)
	if s.Result != nil {
		r := *s.Result
		r.Results = slices.Clone(s.Result.Results)
		out.Result = &r
	}
	return out
}

// ConsentGranted reports whether consent was explicitly given.
func (s Session) ConsentGranted() bool {
	return s.Consent != nil && *s.Consent
}

// CurrentQuestion returns the question awaiting an answer, if any.
func (s Session) CurrentQuestion() (Question, bool) {
	if s.State != StateAskingQuestions || s.CurrentQ >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.CurrentQ], true
}

type SessionStore interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}

// TextStream yields completion chunks until io.EOF.
type TextStream interface {
	Recv() (string, error)
	Close() error
}

type CompletionProvider interface {
	Name() string
	Stream(ctx context.Context, system, prompt string) (TextStream, error)
}

// ProviderFactory builds a provider from the effective settings of a session.
type ProviderFactory func(settings Settings) (CompletionProvider, error)

// Collect drains the stream and returns the concatenated text.
func Collect(stream TextStream) (string, error) {
	defer stream.Close()

	var sb strings.Builder
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}
		sb.WriteString(chunk)
	}
}

type InterviewUsecase interface {
	GetSession(ctx context.Context, id string) (*Session, error)
	GiveConsent(ctx context.Context, id string, accepted bool) (*Session, error)
	SubmitCandidate(ctx context.Context, id string, candidate Candidate) (*Session, error)
	CurrentQuestion(ctx context.Context, id string) (*Question, int, error)
	SubmitAnswer(ctx context.Context, id string, answer string) (*Session, error)
	RetryEvaluation(ctx context.Context, id string) (*Session, error)
	Clear(ctx context.Context, id string, retainConsent bool) (*Session, error)
	UpdateSettings(ctx context.Context, id string, settings Settings) (*Session, error)
	LLMConfigured() bool
}
