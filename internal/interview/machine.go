// Package interview holds the pure interview logic: the session state machine,
// prompt construction and the tolerant completion parser. Nothing here performs I/O.
package interview

import (
	"strings"

	"go-hiring-assistant/internal/domain"
	"go-hiring-assistant/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const (
	FlowMinimal  = "minimal"
	FlowStandard = "standard"

	MinimalMaxQuestions  = 2
	StandardMaxQuestions = 5
)

// MaxQuestionsForFlow returns the question cap of a flow variant.
func MaxQuestionsForFlow(flow string) int {
	if strings.EqualFold(flow, FlowMinimal) {
		return MinimalMaxQuestions
	}
	return StandardMaxQuestions
}

// Event is an input to the state machine.
type Event interface {
	event()
}

type ConsentGiven struct{ Accepted bool }

type FormSubmitted struct{ Candidate domain.Candidate }

type QuestionsGenerated struct {
	Candidate domain.Candidate
	Questions []domain.Question
}

type GenerationFailed struct{ Err error }

type AnswerSubmitted struct{ Text string }

type EvaluationCompleted struct{ Result domain.EvaluationResult }

type EvaluationFailed struct{ Err error }

type RetryEvaluation struct{}

type Cleared struct{ RetainConsent bool }

func (ConsentGiven) event()        {}
func (FormSubmitted) event()       {}
func (QuestionsGenerated) event()  {}
func (GenerationFailed) event()    {}
func (AnswerSubmitted) event()     {}
func (EvaluationCompleted) event() {}
func (EvaluationFailed) event()    {}
func (RetryEvaluation) event()     {}
func (Cleared) event()             {}

type EffectKind int

const (
	EffectPersistCandidate EffectKind = iota + 1
	EffectGenerateQuestions
	EffectEvaluate
)

func (k EffectKind) String() string {
	switch k {
	case EffectPersistCandidate:
		return "persist_candidate"
	case EffectGenerateQuestions:
		return "generate_questions"
	case EffectEvaluate:
		return "evaluate"
	default:
		return "unknown"
	}
}

// Effect is work the caller must perform after a transition. The outcome of
// GenerateQuestions and Evaluate is fed back as a result event.
type Effect struct {
	Kind         EffectKind
	Candidate    domain.Candidate
	MaxQuestions int
	Answers      []domain.Answer
}

type Machine struct {
	maxQuestions int
	validate     *validator.Validate
}

func NewMachine(maxQuestions int, validate *validator.Validate) *Machine {
	if maxQuestions <= 0 {
		maxQuestions = StandardMaxQuestions
	}
	if validate == nil {
		validate = validation.New()
	}
	return &Machine{maxQuestions: maxQuestions, validate: validate}
}

func (m *Machine) MaxQuestions() int {
	return m.maxQuestions
}

// Transition applies ev to s. On error the returned session equals s and no
// effects are returned.
func (m *Machine) Transition(s domain.Session, ev Event) (domain.Session, []Effect, error) {
	if _, ok := ev.(Cleared); !ok && s.State == domain.StateDeclined {
		return s, nil, domain.ErrInvalidTransition
	}

	next := s.Clone()

	switch e := ev.(type) {
	case ConsentGiven:
		if s.State != domain.StateAwaitingConsent {
			return s, nil, domain.ErrInvalidTransition
		}
		accepted := e.Accepted
		next.Consent = &accepted
		if accepted {
			next.State = domain.StateAwaitingForm
		} else {
			next.State = domain.StateDeclined
		}
		return next, nil, nil

	case FormSubmitted:
		if s.State != domain.StateAwaitingForm {
			return s, nil, domain.ErrInvalidTransition
		}
		candidate, err := m.ValidateCandidate(e.Candidate)
		if err != nil {
			return s, nil, err
		}
		return s, []Effect{
			{Kind: EffectPersistCandidate, Candidate: candidate},
			{Kind: EffectGenerateQuestions, Candidate: candidate, MaxQuestions: m.maxQuestions},
		}, nil

	case QuestionsGenerated:
		if s.State != domain.StateAwaitingForm {
			return s, nil, domain.ErrInvalidTransition
		}
		questions := e.Questions
		if len(questions) == 0 {
			return s, nil, &domain.ResponseParseError{}
		}
		if len(questions) > m.maxQuestions {
			questions = questions[:m.maxQuestions]
		}
		candidate := e.Candidate.Normalize()
		next.Candidate = &candidate
		next.Questions = append([]domain.Question{}, questions...)
		next.CurrentQ = 0
		next.Answers = []domain.Answer{}
		next.Result = nil
		next.LastError = ""
		next.State = domain.StateAskingQuestions
		return next, nil, nil

	case GenerationFailed:
		if s.State != domain.StateAwaitingForm {
			return s, nil, domain.ErrInvalidTransition
		}
		return s, nil, e.Err

	case AnswerSubmitted:
		q, ok := s.CurrentQuestion()
		if !ok {
			return s, nil, domain.ErrInvalidTransition
		}
		// Blank submissions are recorded as-is and scored by the evaluator.
		text := strings.TrimSpace(e.Text)
		next.Answers = append(next.Answers, domain.Answer{Question: q.Question, Answer: text, ExpectedAnswerOutline: q.ExpectedAnswerOutline})
		next.CurrentQ++
		if next.CurrentQ < len(next.Questions) {
			return next, nil, nil
		}
		next.State = domain.StateEvaluating
		next.LastError = ""
		return next, []Effect{evaluateEffect(next)}, nil

	case EvaluationCompleted:
		if s.State != domain.StateEvaluating {
			return s, nil, domain.ErrInvalidTransition
		}
		result := e.Result
		next.Result = &result
		next.LastError = ""
		next.State = domain.StateDone
		return next, nil, nil

	case EvaluationFailed:
		if s.State != domain.StateEvaluating {
			return s, nil, domain.ErrInvalidTransition
		}
		if e.Err != nil {
			next.LastError = e.Err.Error()
		}
		return next, nil, e.Err

	case RetryEvaluation:
		if s.State != domain.StateEvaluating || len(s.Answers) == 0 || s.CurrentQ != len(s.Questions) {
			return s, nil, domain.ErrInvalidTransition
		}
		return s, []Effect{evaluateEffect(s)}, nil

	case Cleared:
		fresh := domain.NewSession(s.ID, s.UpdatedAt)
		fresh.CreatedAt = s.CreatedAt
		fresh.Settings = s.Settings
		if e.RetainConsent && s.ConsentGranted() {
			granted := true
			fresh.Consent = &granted
			fresh.State = domain.StateAwaitingForm
		}
		return *fresh, nil, nil
	}

	return s, nil, domain.ErrInvalidTransition
}

func evaluateEffect(s domain.Session) Effect {
	return Effect{Kind: EffectEvaluate, Answers: append([]domain.Answer{}, s.Answers...)}
}

// ValidateCandidate normalizes c and checks every form rule, reporting all
// violations at once.
func (m *Machine) ValidateCandidate(c domain.Candidate) (domain.Candidate, error) {
	c = c.Normalize()
	if err := m.validate.Struct(c); err != nil {
		return c, &domain.ValidationError{Messages: validation.FormatValidationErrors(err)}
	}
	return c, nil
}
