package interview_test

import (
	"errors"
	"testing"
	"time"

	"go-hiring-assistant/internal/domain"
	"go-hiring-assistant/internal/interview"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCandidate() domain.Candidate {
	return domain.Candidate{
		Name:             " Asha Rao ",
		Email:            "asha@example.com",
		Phone:            "9876543210",
		YearsExp:         0,
		DesiredPositions: []string{"Backend Developer"},
		Location:         "Pune",
		TechStack:        []string{"Go", "SQL", "Go", " "},
		Fresher:          &domain.FresherDetails{Degree: "B.Tech"},
	}
}

func twoQuestions() []domain.Question {
	return []domain.Question{
		{Question: "Explain goroutines.", ExpectedAnswerOutline: "Lightweight threads"},
		{Question: "What is an index?", ExpectedAnswerOutline: "B-tree lookup"},
	}
}

func newSession() domain.Session {
	return *domain.NewSession("s1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

func mustTransition(t *testing.T, m *interview.Machine, s domain.Session, ev interview.Event) (domain.Session, []interview.Effect) {
	t.Helper()
	next, effects, err := m.Transition(s, ev)
	require.NoError(t, err)
	return next, effects
}

func TestEndToEndFlow(t *testing.T) {
	m := interview.NewMachine(interview.StandardMaxQuestions, nil)
	s := newSession()

	s, effects := mustTransition(t, m, s, interview.ConsentGiven{Accepted: true})
	assert.Equal(t, domain.StateAwaitingForm, s.State)
	assert.Empty(t, effects)

	s, effects = mustTransition(t, m, s, interview.FormSubmitted{Candidate: validCandidate()})
	assert.Equal(t, domain.StateAwaitingForm, s.State)
	require.Len(t, effects, 2)
	assert.Equal(t, interview.EffectPersistCandidate, effects[0].Kind)
	assert.Equal(t, interview.EffectGenerateQuestions, effects[1].Kind)
	assert.Equal(t, interview.StandardMaxQuestions, effects[1].MaxQuestions)
	assert.Equal(t, "Asha Rao", effects[1].Candidate.Name)
	assert.Equal(t, []string{"Go", "SQL"}, effects[1].Candidate.TechStack)

	s, _ = mustTransition(t, m, s, interview.QuestionsGenerated{Candidate: effects[1].Candidate, Questions: twoQuestions()})
	assert.Equal(t, domain.StateAskingQuestions, s.State)
	assert.Equal(t, 0, s.CurrentQ)
	assert.Empty(t, s.Answers)
	require.NotNil(t, s.Candidate)
	assert.Nil(t, s.Candidate.Experience)

	s, effects = mustTransition(t, m, s, interview.AnswerSubmitted{Text: "They are green threads."})
	assert.Equal(t, 1, s.CurrentQ)
	assert.Equal(t, domain.StateAskingQuestions, s.State)
	assert.Empty(t, effects)

	s, effects = mustTransition(t, m, s, interview.AnswerSubmitted{Text: "A lookup structure."})
	assert.Equal(t, 2, s.CurrentQ)
	assert.Equal(t, domain.StateEvaluating, s.State)
	require.Len(t, effects, 1)
	assert.Equal(t, interview.EffectEvaluate, effects[0].Kind)
	assert.Equal(t, []domain.Answer{
		{Question: "Explain goroutines.", Answer: "They are green threads.", ExpectedAnswerOutline: "Lightweight threads"},
		{Question: "What is an index?", Answer: "A lookup structure.", ExpectedAnswerOutline: "B-tree lookup"},
	}, effects[0].Answers)

	result := domain.EvaluationResult{
		Results:           []domain.QuestionScore{{Question: "Explain goroutines.", Score: 8, Feedback: "Good"}},
		FinalAverageScore: 8,
	}
	s, _ = mustTransition(t, m, s, interview.EvaluationCompleted{Result: result})
	assert.Equal(t, domain.StateDone, s.State)
	require.NotNil(t, s.Result)
	assert.Equal(t, 8.0, s.Result.FinalAverageScore)
	assert.Equal(t, len(s.Answers), s.CurrentQ)
}

func TestDeclineRejectsEverythingButClear(t *testing.T) {
	m := interview.NewMachine(interview.StandardMaxQuestions, nil)
	s, _ := mustTransition(t, m, newSession(), interview.ConsentGiven{Accepted: false})
	assert.Equal(t, domain.StateDeclined, s.State)

	events := []interview.Event{
		interview.FormSubmitted{Candidate: validCandidate()},
		interview.ConsentGiven{Accepted: true},
		interview.AnswerSubmitted{Text: "hi"},
		interview.RetryEvaluation{},
	}
	for _, ev := range events {
		next, effects, err := m.Transition(s, ev)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Empty(t, effects)
		assert.Equal(t, s, next)
	}

	next, _ := mustTransition(t, m, s, interview.Cleared{RetainConsent: true})
	assert.Equal(t, domain.StateAwaitingConsent, next.State)
	assert.Nil(t, next.Consent)
}

func TestInvalidFormAccumulatesErrors(t *testing.T) {
	m := interview.NewMachine(interview.StandardMaxQuestions, nil)
	s, _ := mustTransition(t, m, newSession(), interview.ConsentGiven{Accepted: true})

	next, effects, err := m.Transition(s, interview.FormSubmitted{Candidate: domain.Candidate{
		Email: "not-an-email",
		Phone: "98-76",
	}})

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{
		"Name is required.",
		"Email format is invalid.",
		"Phone number must be numeric.",
		"Please select a desired position.",
		"Location is required.",
		"At least one skill must be added.",
	}, vErr.Messages)
	assert.Empty(t, effects)
	assert.Equal(t, domain.StateAwaitingForm, next.State)
}

func TestRequiredMessagesWhenBlank(t *testing.T) {
	m := interview.NewMachine(interview.StandardMaxQuestions, nil)

	_, err := m.ValidateCandidate(domain.Candidate{Name: "   "})

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Messages, "Name is required.")
	assert.Contains(t, vErr.Messages, "Email is required.")
	assert.Contains(t, vErr.Messages, "Phone number is required.")
}

func TestExperienceLimits(t *testing.T) {
	m := interview.NewMachine(interview.StandardMaxQuestions, nil)
	c := validCandidate()
	c.YearsExp = 4
	c.Experience = &domain.ExperienceDetails{LastCompany: "Acme", YearsInCompany: 51}

	_, err := m.ValidateCandidate(c)

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"Years in company must be at most 50."}, vErr.Messages)
}

func TestQuestionsTruncatedToFlowMax(t *testing.T) {
	seven := make([]domain.Question, 7)
	for i := range seven {
		seven[i] = domain.Question{Question: "Q"}
	}

	for _, flow := range []string{interview.FlowMinimal, interview.FlowStandard} {
		t.Run(flow, func(t *testing.T) {
			max := interview.MaxQuestionsForFlow(flow)
			m := interview.NewMachine(max, nil)
			s, _ := mustTransition(t, m, newSession(), interview.ConsentGiven{Accepted: true})

			s, _ = mustTransition(t, m, s, interview.QuestionsGenerated{Candidate: validCandidate(), Questions: seven})
			assert.Len(t, s.Questions, max)
		})
	}
}

func TestGenerationFailureLeavesSessionUntouched(t *testing.T) {
	m := interview.NewMachine(interview.StandardMaxQuestions, nil)
	s, _ := mustTransition(t, m, newSession(), interview.ConsentGiven{Accepted: true})
	cause := &domain.ServiceError{Provider: "groq", Err: errors.New("timeout")}

	next, effects, err := m.Transition(s, interview.GenerationFailed{Err: cause})
	assert.ErrorIs(t, err, cause)
	assert.Empty(t, effects)
	assert.Equal(t, s, next)

	_, _, err = m.Transition(s, interview.QuestionsGenerated{Candidate: validCandidate()})
	var pErr *domain.ResponseParseError
	assert.True(t, errors.As(err, &pErr))
}

func TestEvaluationFailureRequiresExplicitRetry(t *testing.T) {
	m := interview.NewMachine(interview.MinimalMaxQuestions, nil)
	s, _ := mustTransition(t, m, newSession(), interview.ConsentGiven{Accepted: true})
	s, _ = mustTransition(t, m, s, interview.QuestionsGenerated{Candidate: validCandidate(), Questions: twoQuestions()[:1]})
	s, effects := mustTransition(t, m, s, interview.AnswerSubmitted{Text: "answer"})
	require.Len(t, effects, 1)

	next, effects, err := m.Transition(s, interview.EvaluationFailed{Err: &domain.ResponseParseError{Raw: "nope"}})
	require.Error(t, err)
	assert.Empty(t, effects)
	assert.Equal(t, domain.StateEvaluating, next.State)
	assert.NotEmpty(t, next.LastError)

	_, effects, err = m.Transition(next, interview.RetryEvaluation{})
	require.NoError(t, err)
	require.Len(t, effects, 1)
	assert.Equal(t, interview.EffectEvaluate, effects[0].Kind)
	assert.Len(t, effects[0].Answers, 1)
}

func TestRetryOutsideEvaluatingIsRejected(t *testing.T) {
	m := interview.NewMachine(interview.StandardMaxQuestions, nil)
	_, _, err := m.Transition(newSession(), interview.RetryEvaluation{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestEmptyAnswerAdvances(t *testing.T) {
	m := interview.NewMachine(interview.StandardMaxQuestions, nil)
	s, _ := mustTransition(t, m, newSession(), interview.ConsentGiven{Accepted: true})
	s, _ = mustTransition(t, m, s, interview.QuestionsGenerated{Candidate: validCandidate(), Questions: twoQuestions()})

	s, effects := mustTransition(t, m, s, interview.AnswerSubmitted{Text: "   "})
	assert.Empty(t, effects)
	assert.Equal(t, 1, s.CurrentQ)
	require.Len(t, s.Answers, 1)
	assert.Equal(t, "", s.Answers[0].Answer)
	assert.Equal(t, "Explain goroutines.", s.Answers[0].Question)

	s, effects = mustTransition(t, m, s, interview.AnswerSubmitted{Text: ""})
	assert.Equal(t, domain.StateEvaluating, s.State)
	require.Len(t, effects, 1)
	assert.Len(t, effects[0].Answers, 2)
}

func TestClear(t *testing.T) {
	m := interview.NewMachine(interview.StandardMaxQuestions, nil)
	s, _ := mustTransition(t, m, newSession(), interview.ConsentGiven{Accepted: true})
	s, _ = mustTransition(t, m, s, interview.QuestionsGenerated{Candidate: validCandidate(), Questions: twoQuestions()})
	s.Settings = domain.Settings{Provider: "groq"}

	full, _ := mustTransition(t, m, s, interview.Cleared{})
	assert.Equal(t, domain.StateAwaitingConsent, full.State)
	assert.Nil(t, full.Consent)
	assert.Nil(t, full.Candidate)
	assert.Empty(t, full.Questions)
	assert.Equal(t, "groq", full.Settings.Provider)
	assert.Equal(t, s.ID, full.ID)

	kept, _ := mustTransition(t, m, s, interview.Cleared{RetainConsent: true})
	assert.Equal(t, domain.StateAwaitingForm, kept.State)
	assert.True(t, kept.ConsentGranted())
	assert.Empty(t, kept.Answers)
}

func TestTransitionDoesNotMutateInput(t *testing.T) {
	m := interview.NewMachine(interview.StandardMaxQuestions, nil)
	s, _ := mustTransition(t, m, newSession(), interview.ConsentGiven{Accepted: true})
	s, _ = mustTransition(t, m, s, interview.QuestionsGenerated{Candidate: validCandidate(), Questions: twoQuestions()})
	before := s.Clone()

	_, _ = mustTransition(t, m, s, interview.AnswerSubmitted{Text: "answer"})
	assert.Equal(t, before, s)
}
