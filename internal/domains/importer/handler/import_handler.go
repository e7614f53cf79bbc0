package handler

import (
	"net/http"

	"pos-admin-gateway/internal/domains/importer/model"
	"pos-admin-gateway/internal/domains/importer/service"
	"pos-admin-gateway/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// maxUploadSize caps the CSV upload body at 5 MB.
const maxUploadSize = 5 << 20

// Handler handles bulk import HTTP requests.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(s service.ServiceInterface) *Handler {
	return &Handler{service: s}
}

// ImportProducts handles POST /products/bulk-import. The file goes up
// as multipart field "file"; the response is the full per-row report,
// 200 even when every row failed, since the run itself completed.
func (h *Handler) ImportProducts(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "cannot open uploaded file")
		return
	}
	defer file.Close()

	report, err := h.service.ImportFile(c.Request.Context(), file)
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, report)
}

// DownloadTemplate handles GET /products/import-template and serves
// the starter CSV with its example row.
func (h *Handler) DownloadTemplate(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="`+model.TemplateFilename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(model.TemplateCSV))
}
