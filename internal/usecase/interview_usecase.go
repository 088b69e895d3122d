package usecase

import (
	"context"
	"errors"
	"time"

	"go-hiring-assistant/internal/domain"
	"go-hiring-assistant/internal/interview"
	"go-hiring-assistant/pkg/anonymize"
	"go-hiring-assistant/pkg/logger"
)

type InterviewDeps struct {
	Sessions   domain.SessionStore
	Candidates domain.CandidateLogRepository
	Machine    *interview.Machine
	Anonymizer *anonymize.Anonymizer
	Providers  domain.ProviderFactory
	// Configured reports whether the environment supplies an API key.
	Configured func() bool
	Now        func() time.Time
}

type interviewUsecase struct {
	sessions   domain.SessionStore
	candidates domain.CandidateLogRepository
	machine    *interview.Machine
	anonymizer *anonymize.Anonymizer
	providers  domain.ProviderFactory
	configured func() bool
	now        func() time.Time
	locks      sessionLocks
}

func NewInterviewUsecase(deps InterviewDeps) domain.InterviewUsecase {
	u := &interviewUsecase{
		sessions:   deps.Sessions,
		candidates: deps.Candidates,
		machine:    deps.Machine,
		anonymizer: deps.Anonymizer,
		providers:  deps.Providers,
		configured: deps.Configured,
		now:        deps.Now,
	}
	if u.machine == nil {
		u.machine = interview.NewMachine(interview.StandardMaxQuestions, nil)
	}
	if u.now == nil {
		u.now = time.Now
	}
	if u.configured == nil {
		u.configured = func() bool { return false }
	}
	return u
}

// lock serializes actions on one session id within the process.
func (u *interviewUsecase) lock(id string) func() {
	return u.locks.acquire(id)
}

func (u *interviewUsecase) LLMConfigured() bool {
	return u.configured()
}

func (u *interviewUsecase) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	unlock := u.lock(id)
	defer unlock()
	return u.load(ctx, id)
}

// load returns the stored session or creates and saves a new one.
func (u *interviewUsecase) load(ctx context.Context, id string) (*domain.Session, error) {
	sess, err := u.sessions.Get(ctx, id)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, err
	}

	sess = domain.NewSession(id, u.now().UTC())
	if err := u.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	logger.Log.Info("Session created", "session_id", id)
	return sess, nil
}

func (u *interviewUsecase) save(ctx context.Context, sess *domain.Session) error {
	sess.UpdatedAt = u.now().UTC()
	return u.sessions.Save(ctx, sess)
}

func (u *interviewUsecase) GiveConsent(ctx context.Context, id string, accepted bool) (*domain.Session, error) {
	return u.dispatch(ctx, id, interview.ConsentGiven{Accepted: accepted}, nil)
}

func (u *interviewUsecase) SubmitCandidate(ctx context.Context, id string, candidate domain.Candidate) (*domain.Session, error) {
	return u.dispatch(ctx, id, interview.FormSubmitted{Candidate: candidate}, func(sess *domain.Session) error {
		if sess.State != domain.StateAwaitingForm {
			return nil
		}
		// A missing key blocks the form before anything is persisted.
		_, err := u.providers(sess.Settings)
		return err
	})
}

func (u *interviewUsecase) CurrentQuestion(ctx context.Context, id string) (*domain.Question, int, error) {
	sess, err := u.GetSession(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	q, ok := sess.CurrentQuestion()
	if !ok {
		return nil, 0, domain.ErrNoCurrentQuestion
	}
	return &q, sess.CurrentQ, nil
}

func (u *interviewUsecase) SubmitAnswer(ctx context.Context, id string, answer string) (*domain.Session, error) {
	return u.dispatch(ctx, id, interview.AnswerSubmitted{Text: answer}, nil)
}

func (u *interviewUsecase) RetryEvaluation(ctx context.Context, id string) (*domain.Session, error) {
	return u.dispatch(ctx, id, interview.RetryEvaluation{}, nil)
}

func (u *interviewUsecase) Clear(ctx context.Context, id string, retainConsent bool) (*domain.Session, error) {
	return u.dispatch(ctx, id, interview.Cleared{RetainConsent: retainConsent}, nil)
}

func (u *interviewUsecase) UpdateSettings(ctx context.Context, id string, settings domain.Settings) (*domain.Session, error) {
	unlock := u.lock(id)
	defer unlock()

	sess, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.Settings = settings
	if err := u.save(ctx, sess); err != nil {
		return nil, err
	}
	logger.Log.Info("Session settings updated", "session_id", id, "provider", settings.Provider, "custom_key", settings.APIKey != "")
	return sess, nil
}

// dispatch loads the session, applies ev, runs the resulting effects and saves
// the outcome. precheck runs against the loaded session before the transition.
func (u *interviewUsecase) dispatch(ctx context.Context, id string, ev interview.Event, precheck func(*domain.Session) error) (*domain.Session, error) {
	unlock := u.lock(id)
	defer unlock()

	sess, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if precheck != nil {
		if err := precheck(sess); err != nil {
			return nil, err
		}
	}

	next, effects, err := u.machine.Transition(*sess, ev)
	if err != nil {
		return nil, err
	}

	next, keep, err := u.runEffects(ctx, next, effects)
	if err != nil && !keep {
		return nil, err
	}
	if saveErr := u.save(ctx, &next); saveErr != nil {
		return nil, saveErr
	}
	if err != nil {
		return &next, err
	}
	return &next, nil
}

// runEffects executes effects in order and feeds their outcome back into the
// machine. keep reports whether the returned session must be saved despite err.
func (u *interviewUsecase) runEffects(ctx context.Context, sess domain.Session, effects []interview.Effect) (domain.Session, bool, error) {
	for i := 0; i < len(effects); i++ {
		eff := effects[i]

		var ev interview.Event
		switch eff.Kind {
		case interview.EffectPersistCandidate:
			u.persistCandidate(ctx, sess.ID, eff.Candidate)
			continue
		case interview.EffectGenerateQuestions:
			ev = u.generateQuestions(ctx, sess, eff)
		case interview.EffectEvaluate:
			ev = u.evaluate(ctx, sess, eff)
		default:
			continue
		}

		next, more, err := u.machine.Transition(sess, ev)
		if err != nil {
			_, failedEval := ev.(interview.EvaluationFailed)
			return next, failedEval, err
		}
		sess = next
		effects = append(effects, more...)
	}
	return sess, true, nil
}

// persistCandidate writes the anonymized record. Failures are logged and do not
// stop the interview.
func (u *interviewUsecase) persistCandidate(ctx context.Context, sessionID string, c domain.Candidate) {
	rec := u.anonymizer.Anonymize(c, u.now())
	if err := u.candidates.Append(ctx, rec); err != nil {
		logger.Log.Error("Failed to persist candidate record", "session_id", sessionID, "record_id", rec.ID, "error", err)
		return
	}
	logger.Log.Info("Candidate record persisted", "session_id", sessionID, "record_id", rec.ID)
}

func (u *interviewUsecase) generateQuestions(ctx context.Context, sess domain.Session, eff interview.Effect) interview.Event {
	raw, provider, err := u.complete(ctx, sess.Settings, interview.AssistantSystemPrompt, interview.GenerationPrompt(eff.Candidate, eff.MaxQuestions))
	if err != nil {
		logger.Log.Error("Question generation failed", "session_id", sess.ID, "provider", provider, "error", err)
		return interview.GenerationFailed{Err: err}
	}

	result, err := interview.ParseGeneration(raw, eff.MaxQuestions)
	if err != nil {
		logger.Log.Warn("Unparseable generation response", "session_id", sess.ID, "provider", provider, "error", err)
		return interview.GenerationFailed{Err: err}
	}

	logger.Log.Info("Questions generated", "session_id", sess.ID, "provider", provider, "count", len(result.Questions))
	return interview.QuestionsGenerated{Candidate: eff.Candidate, Questions: result.Questions}
}

func (u *interviewUsecase) evaluate(ctx context.Context, sess domain.Session, eff interview.Effect) interview.Event {
	raw, provider, err := u.complete(ctx, sess.Settings, interview.EvaluatorSystemPrompt, interview.EvaluationPrompt(eff.Answers))
	if err != nil {
		logger.Log.Error("Evaluation failed", "session_id", sess.ID, "provider", provider, "error", err)
		return interview.EvaluationFailed{Err: err}
	}

	result, err := interview.ParseEvaluation(raw)
	if err != nil {
		logger.Log.Warn("Unparseable evaluation response", "session_id", sess.ID, "provider", provider, "error", err)
		return interview.EvaluationFailed{Err: err}
	}

	logger.Log.Info("Answers evaluated", "session_id", sess.ID, "provider", provider, "final_average_score", result.FinalAverageScore)
	return interview.EvaluationCompleted{Result: result}
}

// complete sends one prompt and returns the whole streamed response.
func (u *interviewUsecase) complete(ctx context.Context, settings domain.Settings, system, prompt string) (string, string, error) {
	provider, err := u.providers(settings)
	if err != nil {
		return "", settings.Provider, err
	}

	stream, err := provider.Stream(ctx, system, prompt)
	if err != nil {
		return "", provider.Name(), asServiceError(provider.Name(), err)
	}

	text, err := domain.Collect(stream)
	if err != nil {
		return "", provider.Name(), asServiceError(provider.Name(), err)
	}
	return text, provider.Name(), nil
}

func asServiceError(provider string, err error) error {
	var svcErr *domain.ServiceError
	if errors.As(err, &svcErr) {
		return err
	}
	return &domain.ServiceError{Provider: provider, Err: err}
}
