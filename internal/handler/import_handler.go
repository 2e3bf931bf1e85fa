package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"beachtrack/internal/domain"
	"beachtrack/internal/service"
)

// multipartOverhead is the slack allowed on top of the file limit for
// multipart boundaries and headers.
const multipartOverhead = 64 << 10

var pdfMagic = []byte("%PDF-")

type profileTypeURI struct {
	ProfileType string `uri:"profileType" binding:"required,profiletype"`
}

// ImportHandler handles PDF import endpoints.
type ImportHandler struct {
	importService service.ImportService
	maxBytes      int64
}

// NewImportHandler creates a new ImportHandler. maxBytes caps the uploaded PDF.
func NewImportHandler(importService service.ImportService, maxBytes int64) *ImportHandler {
	return &ImportHandler{importService: importService, maxBytes: maxBytes}
}

// Import handles POST /api/v1/pdf-import/import/:profileType
// @Summary Import a profile PDF
// @Description Extract, classify and summarise a Jigsaw, Pathways or Workday PDF, then recompute the consolidated profile
// @Tags pdf-import
// @Accept multipart/form-data
// @Produce json
// @Param profileType path string true "Source tool" Enums(jigsaw, pathways, workday)
// @Param pdf formData file true "PDF export"
// @Success 200 {object} Response{data=service.ImportResult}
// @Failure 400 {object} ErrorResponseBody "Invalid profile type, missing or non-PDF file"
// @Failure 401 {object} ErrorResponseBody "Missing token"
// @Failure 403 {object} ErrorResponseBody "Invalid token"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 422 {object} ErrorResponseBody "Text extraction failed"
// @Security BearerAuth
// @Router /pdf-import/import/{profileType} [post]
func (h *ImportHandler) Import(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var uri profileTypeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		HandleError(c, domain.ErrInvalidProfileType)
		return
	}

	name, data, ok := h.readPDF(c)
	if !ok {
		return
	}

	result, err := h.importService.Import(c.Request.Context(), service.ImportInput{
		UserID:      userID,
		ProfileType: uri.ProfileType,
		FileName:    name,
		Data:        data,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Detect handles POST /api/v1/pdf-import/detect
// @Summary Import a PDF of unknown origin
// @Description Detect the source tool from the text. Recognised sources are imported as usual; otherwise the generic parse is returned and nothing is stored
// @Tags pdf-import
// @Accept multipart/form-data
// @Produce json
// @Param pdf formData file true "PDF export"
// @Success 200 {object} Response{data=service.ImportResult}
// @Failure 400 {object} ErrorResponseBody
// @Failure 413 {object} ErrorResponseBody
// @Failure 422 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /pdf-import/detect [post]
func (h *ImportHandler) Detect(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	name, data, ok := h.readPDF(c)
	if !ok {
		return
	}

	result, err := h.importService.Detect(c.Request.Context(), service.ImportInput{
		UserID:   userID,
		FileName: name,
		Data:     data,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// History handles GET /api/v1/pdf-import/history
// @Summary Import history
// @Description Latest import per source tool; null for tools never imported
// @Tags pdf-import
// @Produce json
// @Success 200 {object} Response{data=map[string]domain.ImportHistoryEntry}
// @Security BearerAuth
// @Router /pdf-import/history [get]
func (h *ImportHandler) History(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	history, err := h.importService.History(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, history)
}

// GetSourceProfile handles GET /api/v1/pdf-import/profile/:profileType
// @Summary Get one imported source profile
// @Tags pdf-import
// @Produce json
// @Param profileType path string true "Source tool" Enums(jigsaw, pathways, workday)
// @Success 200 {object} Response{data=domain.SourceProfile}
// @Failure 400 {object} ErrorResponseBody
// @Failure 404 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /pdf-import/profile/{profileType} [get]
func (h *ImportHandler) GetSourceProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var uri profileTypeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		HandleError(c, domain.ErrInvalidProfileType)
		return
	}

	sp, err := h.importService.GetSourceProfile(c.Request.Context(), userID, uri.ProfileType)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sp)
}

// ArchiveURL handles GET /api/v1/pdf-import/profile/:profileType/archive
// @Summary Download link for the archived PDF
// @Tags pdf-import
// @Produce json
// @Param profileType path string true "Source tool" Enums(jigsaw, pathways, workday)
// @Success 200 {object} Response{data=ArchiveURLResponse}
// @Failure 404 {object} ErrorResponseBody "No archived file"
// @Security BearerAuth
// @Router /pdf-import/profile/{profileType}/archive [get]
func (h *ImportHandler) ArchiveURL(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var uri profileTypeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		HandleError(c, domain.ErrInvalidProfileType)
		return
	}

	url, err := h.importService.ArchiveURL(c.Request.Context(), userID, uri.ProfileType)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, ArchiveURLResponse{URL: url})
}

// GenerateMeNext handles POST /api/v1/pdf-import/me-next
// @Summary Regenerate Me Next from imported data
// @Description Recompute Me Next from stored imports. Saved to the profile only when persist=true
// @Tags pdf-import
// @Produce json
// @Param persist query bool false "Save the result to the profile"
// @Success 200 {object} Response{data=service.MeNextResult}
// @Failure 404 {object} ErrorResponseBody "Nothing imported yet"
// @Security BearerAuth
// @Router /pdf-import/me-next [post]
func (h *ImportHandler) GenerateMeNext(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	persist, _ := strconv.ParseBool(c.Query("persist"))
	result, err := h.importService.GenerateMeNext(c.Request.Context(), userID, persist)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// readPDF reads the "pdf" multipart field, enforcing the size cap and a PDF
// signature. It writes the error response and returns false on failure.
func (h *ImportHandler) readPDF(c *gin.Context) (string, []byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)

	file, header, err := c.Request.FormFile("pdf")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			HandleError(c, domain.ErrFileTooLarge)
			return "", nil, false
		}
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "no PDF file uploaded; use form field \"pdf\"")
		return "", nil, false
	}
	defer func() { _ = file.Close() }()

	if header.Size > h.maxBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return "", nil, false
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") &&
		header.Header.Get("Content-Type") != "application/pdf" {
		HandleError(c, domain.ErrUnsupportedFileType)
		return "", nil, false
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		HandleError(c, err)
		return "", nil, false
	}
	if int64(len(data)) > h.maxBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return "", nil, false
	}
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), pdfMagic) {
		HandleError(c, domain.ErrUnsupportedFileType)
		return "", nil, false
	}

	return filepath.Base(header.Filename), data, true
}
