package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-hiring-assistant/config"
	"go-hiring-assistant/internal/delivery/http/middleware"
	"go-hiring-assistant/internal/domain"
	"go-hiring-assistant/internal/usecase"
	"go-hiring-assistant/pkg/sessiontoken"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockInterviewUsecase struct {
	mock.Mock
}

func (m *MockInterviewUsecase) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockInterviewUsecase) GiveConsent(ctx context.Context, id string, accepted bool) (*domain.Session, error) {
	args := m.Called(ctx, id, accepted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockInterviewUsecase) SubmitCandidate(ctx context.Context, id string, c domain.Candidate) (*domain.Session, error) {
	args := m.Called(ctx, id, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockInterviewUsecase) CurrentQuestion(ctx context.Context, id string) (*domain.Question, int, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*domain.Question), args.Int(1), args.Error(2)
}

func (m *MockInterviewUsecase) SubmitAnswer(ctx context.Context, id string, answer string) (*domain.Session, error) {
	args := m.Called(ctx, id, answer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockInterviewUsecase) RetryEvaluation(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockInterviewUsecase) Clear(ctx context.Context, id string, retainConsent bool) (*domain.Session, error) {
	args := m.Called(ctx, id, retainConsent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockInterviewUsecase) UpdateSettings(ctx context.Context, id string, s domain.Settings) (*domain.Session, error) {
	args := m.Called(ctx, id, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockInterviewUsecase) LLMConfigured() bool {
	return m.Called().Bool(0)
}

type MockExportUsecase struct {
	mock.Mock
}

func (m *MockExportUsecase) ExportCandidates(ctx context.Context, format string) ([]byte, string, error) {
	args := m.Called(ctx, format)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

const testCSRF = "csrf-test-token"

func newTestRouter(t *testing.T, interviewUC *MockInterviewUsecase, exportUC *MockExportUsecase) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewRouter(RouterDeps{
		InterviewUC: interviewUC,
		ExportUC:    exportUC,
		HealthUC:    usecase.NewHealthUsecase(func() bool { return true }),
		Signer:      sessiontoken.NewSigner("test-secret", time.Hour),
		Config: &config.Config{
			SessionTTL:             time.Hour,
			RateLimitWindowSeconds: 60,
			RateLimitLLMThreshold:  100,
			AdminToken:             "admin-token",
		},
	})
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: middleware.CSRFTokenCookieName, Value: testCSRF})
	req.Header.Set(middleware.CSRFTokenHeaderName, testCSRF)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func askingSession() *domain.Session {
	yes := true
	s := domain.NewSession("sid", time.Now())
	s.Consent = &yes
	s.State = domain.StateAskingQuestions
	s.Questions = []domain.Question{
		{Question: "What is a goroutine?", ExpectedAnswerOutline: "lightweight thread"},
		{Question: "What is a channel?", ExpectedAnswerOutline: "typed conduit"},
	}
	s.Settings = domain.Settings{Provider: "openai", APIKey: "sk-secret"}
	return s
}

func TestGetSessionHidesSecrets(t *testing.T) {
	uc := new(MockInterviewUsecase)
	uc.On("GetSession", mock.Anything, mock.AnythingOfType("string")).Return(askingSession(), nil)
	uc.On("LLMConfigured").Return(false)

	r := newTestRouter(t, uc, new(MockExportUsecase))
	w := doRequest(r, http.MethodGet, "/v1/session", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "sk-secret")
	assert.NotContains(t, w.Body.String(), "lightweight thread")

	var view SessionView
	decodeData(t, w, &view)
	assert.Equal(t, domain.StateAskingQuestions, view.State)
	assert.True(t, view.Settings.CustomAPIKey)
	assert.True(t, view.LLMConfigured)
	require.NotNil(t, view.CurrentQuestion)
	assert.Equal(t, "What is a goroutine?", view.CurrentQuestion.Question)
	assert.Equal(t, 2, view.TotalQuestions)
}

func TestSessionAnswersHideOutline(t *testing.T) {
	sess := askingSession()
	sess.Answers = []domain.Answer{
		{Question: "What is a goroutine?", Answer: "A green thread.", ExpectedAnswerOutline: "lightweight thread"},
	}
	sess.CurrentQ = 1
	uc := new(MockInterviewUsecase)
	uc.On("GetSession", mock.Anything, mock.AnythingOfType("string")).Return(sess, nil)
	uc.On("LLMConfigured").Return(false)

	r := newTestRouter(t, uc, new(MockExportUsecase))
	w := doRequest(r, http.MethodGet, "/v1/session", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "lightweight thread")
	assert.NotContains(t, w.Body.String(), "expected_answer_outline")

	var view SessionView
	decodeData(t, w, &view)
	assert.Equal(t, []AnswerView{{Question: "What is a goroutine?", Answer: "A green thread."}}, view.Answers)
}

func TestGiveConsent(t *testing.T) {
	uc := new(MockInterviewUsecase)
	s := domain.NewSession("sid", time.Now())
	no := false
	s.Consent = &no
	s.State = domain.StateDeclined
	uc.On("GiveConsent", mock.Anything, mock.AnythingOfType("string"), false).Return(s, nil)
	uc.On("LLMConfigured").Return(true)

	r := newTestRouter(t, uc, new(MockExportUsecase))

	w := doRequest(r, http.MethodPost, "/v1/session/consent", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/v1/session/consent", `{"accepted":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	var view SessionView
	decodeData(t, w, &view)
	assert.Equal(t, domain.StateDeclined, view.State)
}

func TestConsentRequiresCSRF(t *testing.T) {
	uc := new(MockInterviewUsecase)
	r := newTestRouter(t, uc, new(MockExportUsecase))

	req := httptest.NewRequest(http.MethodPost, "/v1/session/consent", strings.NewReader(`{"accepted":true}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	uc.AssertNotCalled(t, "GiveConsent", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitCandidateValidationError(t *testing.T) {
	uc := new(MockInterviewUsecase)
	uc.On("SubmitCandidate", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("domain.Candidate")).
		Return(nil, &domain.ValidationError{Messages: []string{"Name is required.", "Phone number must be numeric."}})

	r := newTestRouter(t, uc, new(MockExportUsecase))
	w := doRequest(r, http.MethodPost, "/v1/session/candidate", `{"email":"a@b.co","phone":"12ab"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Name is required.")
	assert.Contains(t, w.Body.String(), "Phone number must be numeric.")
}

func TestSubmitCandidateProviderFailure(t *testing.T) {
	uc := new(MockInterviewUsecase)
	uc.On("SubmitCandidate", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &domain.ServiceError{Provider: "groq", Err: assert.AnError})

	r := newTestRouter(t, uc, new(MockExportUsecase))
	w := doRequest(r, http.MethodPost, "/v1/session/candidate", `{"name":"Ann"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestCurrentQuestion(t *testing.T) {
	uc := new(MockInterviewUsecase)
	s := askingSession()
	q := s.Questions[0]
	uc.On("CurrentQuestion", mock.Anything, mock.Anything).Return(&q, 0, nil)
	uc.On("GetSession", mock.Anything, mock.Anything).Return(s, nil)

	r := newTestRouter(t, uc, new(MockExportUsecase))
	w := doRequest(r, http.MethodGet, "/v1/session/question", "")
	require.Equal(t, http.StatusOK, w.Code)

	var view QuestionView
	decodeData(t, w, &view)
	assert.Equal(t, QuestionView{Index: 0, Total: 2, Question: "What is a goroutine?"}, view)
}

func TestCurrentQuestionNone(t *testing.T) {
	uc := new(MockInterviewUsecase)
	uc.On("CurrentQuestion", mock.Anything, mock.Anything).Return(nil, 0, domain.ErrNoCurrentQuestion)

	r := newTestRouter(t, uc, new(MockExportUsecase))
	w := doRequest(r, http.MethodGet, "/v1/session/question", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitAnswerWrongState(t *testing.T) {
	uc := new(MockInterviewUsecase)
	uc.On("SubmitAnswer", mock.Anything, mock.Anything, "goroutines are cheap").Return(nil, domain.ErrInvalidTransition)

	r := newTestRouter(t, uc, new(MockExportUsecase))
	w := doRequest(r, http.MethodPost, "/v1/session/answers", `{"answer":"goroutines are cheap"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestClearWithoutBody(t *testing.T) {
	uc := new(MockInterviewUsecase)
	uc.On("Clear", mock.Anything, mock.Anything, false).Return(domain.NewSession("sid", time.Now()), nil)
	uc.On("LLMConfigured").Return(true)

	r := newTestRouter(t, uc, new(MockExportUsecase))
	w := doRequest(r, http.MethodPost, "/v1/session/clear", "")
	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

func TestUpdateSettingsRejectsUnknownProvider(t *testing.T) {
	uc := new(MockInterviewUsecase)
	r := newTestRouter(t, uc, new(MockExportUsecase))

	w := doRequest(r, http.MethodPut, "/v1/session/settings", `{"provider":"cohere"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "UpdateSettings", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateSettingsNormalizesProvider(t *testing.T) {
	uc := new(MockInterviewUsecase)
	want := domain.Settings{Provider: "gemini", Model: "gemini-2.0-flash", APIKey: "g-key"}
	s := domain.NewSession("sid", time.Now())
	s.Settings = want
	uc.On("UpdateSettings", mock.Anything, mock.Anything, want).Return(s, nil)
	uc.On("LLMConfigured").Return(false)

	r := newTestRouter(t, uc, new(MockExportUsecase))
	w := doRequest(r, http.MethodPut, "/v1/session/settings", `{"provider":"Gemini","model":"gemini-2.0-flash","api_key":"g-key"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "g-key")
}

func TestExportRequiresAdminToken(t *testing.T) {
	exportUC := new(MockExportUsecase)
	exportUC.On("ExportCandidates", mock.Anything, "csv").Return([]byte("id\n"), "candidates.csv", nil)

	r := newTestRouter(t, new(MockInterviewUsecase), exportUC)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/candidates/export?format=csv", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/candidates/export?format=csv", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "candidates.csv")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
}

func TestFormOptionsAndHealth(t *testing.T) {
	r := newTestRouter(t, new(MockInterviewUsecase), new(MockExportUsecase))

	w := doRequest(r, http.MethodGet, "/v1/candidates/form-options", "")
	require.Equal(t, http.StatusOK, w.Code)
	var opts domain.FormOptions
	decodeData(t, w, &opts)
	assert.Equal(t, 80, opts.MaxYearsExp)
	assert.Contains(t, opts.JobRoles, "Software Engineer")

	w = doRequest(r, http.MethodGet, "/v1/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"llm_configured":true`)
}
