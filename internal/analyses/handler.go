package analyses

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/shared/server/respond"
)

const (
	defaultListLimit = 20
	maxListLimit     = 50
	// multipartOverhead covers form boundaries and headers around the file.
	multipartOverhead = 1 << 20
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterLegacyRoutes attaches the unversioned upload endpoint.
func (h *Handler) RegisterLegacyRoutes(r gin.IRoutes) {
	r.POST("/upload-resume", h.analyzeUpload)
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/analyze", h.analyzeUpload)
	rg.POST("/resumes/analyze-text", h.analyzeText)
	rg.POST("/resumes/analyze-stored", h.analyzeStored)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
}

func (h *Handler) analyzeUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Svc.maxUploadBytes()+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, ErrTooLarge.Error(), nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "unable to read file", nil)
		return
	}
	defer file.Close()

	analysis, err := h.Svc.AnalyzeUpload(c.Request.Context(), Upload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	writeResult(c, analysis)
}

type analyzeTextRequest struct {
	Text     string `json:"text"`
	Filename string `json:"filename"`
}

func (h *Handler) analyzeText(c *gin.Context) {
	var req analyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", nil)
		return
	}

	analysis, err := h.Svc.AnalyzeText(c.Request.Context(), req.Filename, req.Text)
	if err != nil {
		h.writeError(c, err)
		return
	}

	writeResult(c, analysis)
}

type analyzeStoredRequest struct {
	StorageKey  string `json:"storageKey"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

func (h *Handler) analyzeStored(c *gin.Context) {
	var req analyzeStoredRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", nil)
		return
	}

	analysis, err := h.Svc.AnalyzeStored(c.Request.Context(), StoredUpload{
		StorageKey:  req.StorageKey,
		FileName:    req.Filename,
		ContentType: req.ContentType,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	writeResult(c, analysis)
}

func (h *Handler) getAnalysis(c *gin.Context) {
	analysisID := c.Param("id")
	if analysisID == "" {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "analysis id is required", nil)
		return
	}

	analysis, err := h.Svc.Get(c.Request.Context(), analysisID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Set("analysisId", analysis.ID)

	respond.OK(c, analysis)
}

func (h *Handler) listAnalyses(c *gin.Context) {
	limit := defaultListLimit
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	analyses, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	items := make([]Summary, 0, len(analyses))
	for _, a := range analyses {
		items = append(items, a.Summary())
	}

	respond.OK(c, gin.H{
		"items":  items,
		"limit":  limit,
		"offset": offset,
	})
}

func writeResult(c *gin.Context, analysis Analysis) {
	c.Set("analysisId", analysis.ID)
	c.Header("X-Analysis-Id", analysis.ID)
	respond.OK(c, analysis.Result)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnsupportedType):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, ErrUnsupportedType.Error(), nil)
	case errors.Is(err, ErrTooLarge):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, ErrTooLarge.Error(), gin.H{"maxBytes": h.Svc.maxUploadBytes()})
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), nil)
	case errors.Is(err, ErrNoText):
		respond.Error(c, http.StatusBadRequest, ErrorCodeExtraction, "Could not extract text from document", nil)
	case errors.Is(err, ErrUploadNotFound):
		respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, ErrUploadNotFound.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, "analysis not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to analyze resume", nil)
	}
}
