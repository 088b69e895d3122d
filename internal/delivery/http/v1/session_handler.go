package v1

import (
	"net/http"

	"go-hiring-assistant/internal/delivery/http/middleware"
	"go-hiring-assistant/internal/delivery/http/response"
	"go-hiring-assistant/internal/domain"
	"go-hiring-assistant/pkg/apperror"
	"go-hiring-assistant/pkg/llm"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	interviewUC domain.InterviewUsecase
}

// NewSessionHandler registers the interview routes. llmLimit guards the
// routes that can trigger a completion request.
func NewSessionHandler(r *gin.RouterGroup, interviewUC domain.InterviewUsecase, llmLimit gin.HandlerFunc) {
	handler := &SessionHandler{interviewUC: interviewUC}

	session := r.Group("/session")
	{
		session.GET("", handler.GetSession)
		session.POST("/consent", handler.GiveConsent)
		session.POST("/candidate", llmLimit, handler.SubmitCandidate)
		session.GET("/question", handler.CurrentQuestion)
		session.POST("/answers", llmLimit, handler.SubmitAnswer)
		session.POST("/evaluation/retry", llmLimit, handler.RetryEvaluation)
		session.POST("/clear", handler.Clear)
		session.PUT("/settings", handler.UpdateSettings)
	}
}

func (h *SessionHandler) respond(c *gin.Context, message string, s *domain.Session) {
	response.Success(c, http.StatusOK, message, newSessionView(s, h.interviewUC.LLMConfigured()))
}

// GetSession godoc
// @Summary      Get interview session
// @Description  Returns the interview state of the current browser session
// @Tags         session
// @Produce      json
// @Success      200  {object}  response.Response{data=SessionView}
// @Router       /session [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	s, err := h.interviewUC.GetSession(c, middleware.SessionID(c))
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, "Session", s)
}

// GiveConsent godoc
// @Summary      Record data-collection consent
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request  body      ConsentRequest  true  "Consent decision"
// @Success      200      {object}  response.Response{data=SessionView}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /session/consent [post]
func (h *SessionHandler) GiveConsent(c *gin.Context) {
	var req ConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("accepted must be true or false"))
		return
	}

	s, err := h.interviewUC.GiveConsent(c, middleware.SessionID(c), *req.Accepted)
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, "Consent recorded", s)
}

// SubmitCandidate godoc
// @Summary      Submit candidate details
// @Description  Validates the form, logs an anonymized record and generates technical questions
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request  body      domain.Candidate  true  "Candidate form"
// @Success      200      {object}  response.Response{data=SessionView}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /session/candidate [post]
func (h *SessionHandler) SubmitCandidate(c *gin.Context) {
	var candidate domain.Candidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.Error(apperror.BadRequest("Invalid candidate payload"))
		return
	}

	s, err := h.interviewUC.SubmitCandidate(c, middleware.SessionID(c), candidate)
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, "Questions generated", s)
}

// CurrentQuestion godoc
// @Summary      Get the question awaiting an answer
// @Tags         session
// @Produce      json
// @Success      200  {object}  response.Response{data=QuestionView}
// @Failure      404  {object}  response.Response
// @Router       /session/question [get]
func (h *SessionHandler) CurrentQuestion(c *gin.Context) {
	q, idx, err := h.interviewUC.CurrentQuestion(c, middleware.SessionID(c))
	if err != nil {
		c.Error(err)
		return
	}

	s, err := h.interviewUC.GetSession(c, middleware.SessionID(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Current question", QuestionView{
		Index:    idx,
		Total:    len(s.Questions),
		Question: q.Question,
	})
}

// SubmitAnswer godoc
// @Summary      Answer the current question
// @Description  Records the answer; the last answer triggers evaluation
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request  body      AnswerRequest  true  "Answer"
// @Success      200      {object}  response.Response{data=SessionView}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /session/answers [post]
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid answer payload"))
		return
	}

	s, err := h.interviewUC.SubmitAnswer(c, middleware.SessionID(c), req.Answer)
	if err != nil {
		c.Error(err)
		return
	}

	msg := "Answer recorded"
	if s.State == domain.StateDone {
		msg = "Interview evaluated"
	}
	h.respond(c, msg, s)
}

// RetryEvaluation godoc
// @Summary      Retry a failed evaluation
// @Tags         session
// @Produce      json
// @Success      200  {object}  response.Response{data=SessionView}
// @Failure      409  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /session/evaluation/retry [post]
func (h *SessionHandler) RetryEvaluation(c *gin.Context) {
	s, err := h.interviewUC.RetryEvaluation(c, middleware.SessionID(c))
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, "Interview evaluated", s)
}

// Clear godoc
// @Summary      Clear the conversation
// @Description  Resets the interview, optionally keeping the consent decision
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request  body      ClearRequest  false  "Clear options"
// @Success      200      {object}  response.Response{data=SessionView}
// @Router       /session/clear [post]
func (h *SessionHandler) Clear(c *gin.Context) {
	var req ClearRequest
	// Body is optional
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.BadRequest("Invalid clear payload"))
			return
		}
	}

	s, err := h.interviewUC.Clear(c, middleware.SessionID(c), req.RetainConsent)
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, "Conversation cleared", s)
}

// UpdateSettings godoc
// @Summary      Override provider settings for this session
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        request  body      SettingsRequest  true  "Provider settings"
// @Success      200      {object}  response.Response{data=SessionView}
// @Failure      400      {object}  response.Response
// @Router       /session/settings [put]
func (h *SessionHandler) UpdateSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid settings payload"))
		return
	}
	if req.Provider != "" {
		kind, err := llm.ParseKind(req.Provider)
		if err != nil {
			c.Error(&domain.ValidationError{Messages: []string{err.Error()}})
			return
		}
		req.Provider = string(kind)
	}

	s, err := h.interviewUC.UpdateSettings(c, middleware.SessionID(c), domain.Settings{
		Provider: req.Provider,
		Model:    req.Model,
		APIKey:   req.APIKey,
	})
	if err != nil {
		c.Error(err)
		return
	}
	h.respond(c, "Settings updated", s)
}
