package v1

import (
	"net/http"
	"strings"

	"go-hiring-assistant/internal/delivery/http/response"
	"go-hiring-assistant/internal/domain"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	exportUC domain.ExportUsecase
}

// NewCandidateHandler registers the form metadata route on public and the
// export route on admin.
func NewCandidateHandler(public, admin *gin.RouterGroup, exportUC domain.ExportUsecase) {
	handler := &CandidateHandler{exportUC: exportUC}

	public.GET("/candidates/form-options", handler.FormOptions)
	admin.GET("/candidates/export", handler.Export)
}

// FormOptions godoc
// @Summary      Candidate form choices
// @Description  Job roles, common skills and numeric bounds for the candidate form
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.FormOptions}
// @Router       /candidates/form-options [get]
func (h *CandidateHandler) FormOptions(c *gin.Context) {
	response.Success(c, http.StatusOK, "Form options", domain.DefaultFormOptions())
}

// Export godoc
// @Summary      Export the anonymized candidate log
// @Tags         candidates
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        format  query  string  false  "xlsx (default) or csv"
// @Success      200
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /candidates/export [get]
// @Security     BearerAuth
func (h *CandidateHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")

	data, filename, err := h.exportUC.ExportCandidates(c, format)
	if err != nil {
		c.Error(err)
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if strings.HasSuffix(filename, ".csv") {
		contentType = "text/csv; charset=utf-8"
	}
	response.Attachment(c, filename, contentType, data)
}
