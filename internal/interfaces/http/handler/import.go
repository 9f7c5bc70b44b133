package handler

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	importapp "github.com/erp/docimport/internal/application/import"
	"github.com/erp/docimport/internal/domain/trade"
	"github.com/erp/docimport/internal/infrastructure/logger"
	"github.com/erp/docimport/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// FormFileField is the multipart field holding the uploaded document
const FormFileField = "file"

// DocumentImporter is the import service as seen by the HTTP layer
type DocumentImporter interface {
	Import(ctx context.Context, req importapp.ImportRequest) (*importapp.ImportResult, error)
	Detect(ctx context.Context, raw []byte) (trade.DocType, error)
}

// ImportHandler serves the UBL order import endpoints
type ImportHandler struct {
	BaseHandler
	service DocumentImporter
}

// NewImportHandler creates an ImportHandler
func NewImportHandler(service DocumentImporter) *ImportHandler {
	return &ImportHandler{service: service}
}

// Import handles POST /imports/ubl-orders[?match_customer=true]. The
// document is the raw request body, or the "file" part of a multipart form.
//
// @ID           importUBLOrder
// @Summary      Import a UBL order document
// @Description  Imports a UBL 2.x Order or RequestForQuotation. The document is the raw request body or the "file" part of a multipart form. With match_customer the customer party is resolved against the partner directory.
// @Tags         imports
// @Accept       xml,mpfd
// @Produce      json
// @Param        match_customer query    bool   false "Match the customer party against the partner directory"
// @Param        X-Filename     header   string false "Original filename of a raw body upload"
// @Param        file           formData file   false "UBL document (multipart uploads)"
// @Success      200 {object} dto.Response{data=dto.ImportResponse}
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      413 {object} dto.Response
// @Failure      415 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      501 {object} dto.Response
// @Router       /api/v1/imports/ubl-orders [post]
func (h *ImportHandler) Import(c *gin.Context) {
	var query dto.ImportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	filename, content, err := readDocument(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.service.Import(c.Request.Context(), importapp.ImportRequest{
		Filename:      filename,
		Content:       content,
		MatchCustomer: query.MatchCustomer,
	})
	if result != nil {
		c.Set(logger.GinDocTypeKey, result.DocType.String())
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.ToImportResponse(result))
}

// Detect handles POST /imports/ubl-orders/detect
//
// @ID           detectUBLDocument
// @Summary      Detect the type of a UBL document
// @Description  Returns the document type (order or rfq) without parsing the content
// @Tags         imports
// @Accept       xml,mpfd
// @Produce      json
// @Param        file formData file false "UBL document (multipart uploads)"
// @Success      200 {object} dto.Response{data=dto.DetectResponse}
// @Failure      400 {object} dto.Response
// @Failure      415 {object} dto.Response
// @Router       /api/v1/imports/ubl-orders/detect [post]
func (h *ImportHandler) Detect(c *gin.Context) {
	_, content, err := readDocument(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	dt, err := h.service.Detect(c.Request.Context(), content)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Set(logger.GinDocTypeKey, dt.String())
	h.Success(c, dto.ToDetectResponse(dt))
}

// RegisterRoutes mounts the import endpoints under rg
func (h *ImportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	imports := rg.Group("/imports/ubl-orders")
	imports.POST("", h.Import)
	imports.POST("/detect", h.Detect)
}

// readDocument returns the submitted filename (may be empty) and content
func readDocument(c *gin.Context) (string, []byte, error) {
	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if !strings.HasPrefix(mediaType, "multipart/") {
		content, err := io.ReadAll(c.Request.Body)
		return c.GetHeader("X-Filename"), content, err
	}

	fh, err := c.FormFile(FormFileField)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return "", nil, err
		}
		return "", nil, importapp.ErrEmptyDocument
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	return fh.Filename, content, err
}
