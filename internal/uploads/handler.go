package uploads

import (
	"context"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ats-backend/internal/extract"
	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
	"ats-backend/internal/shared/telemetry"
	"ats-backend/internal/shared/util"
)

const (
	defaultMaxUploadBytes = 5 << 20
	defaultPresignExpires = 15 * time.Minute
)

// Presigner issues URLs a client can upload an object to directly.
type Presigner interface {
	PresignPut(ctx context.Context, storageKey string, expires time.Duration) (string, error)
}

// Handler issues presigned upload URLs. The client PUTs the resume to the
// URL and then asks for it to be scored by storage key.
type Handler struct {
	Presigner      Presigner
	MaxUploadBytes int64
	Expires        time.Duration
	NewID          func() string
}

// NewHandler constructs a Handler with default limits.
func NewHandler(presigner Presigner, maxUploadBytes int64) *Handler {
	return &Handler{Presigner: presigner, MaxUploadBytes: maxUploadBytes}
}

type presignRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

type presignResponse struct {
	UploadURL        string `json:"uploadUrl"`
	StorageKey       string `json:"storageKey"`
	ExpiresInSeconds int64  `json:"expiresInSeconds"`
}

// RegisterRoutes attaches upload routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads/presign", h.presign)
}

func (h *Handler) presign(c *gin.Context) {
	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	req.FileName = strings.TrimSpace(req.FileName)
	req.ContentType = strings.TrimSpace(req.ContentType)

	if req.FileName == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "fileName is required", nil)
		return
	}
	if !extract.Supported(extract.NormalizeMimeType(req.ContentType, req.FileName, nil)) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "contentType is not allowed", nil)
		return
	}
	if req.SizeBytes <= 0 || req.SizeBytes > h.maxUploadBytes() {
		respond.Error(c, http.StatusBadRequest, "validation_error", "sizeBytes exceeds limit", gin.H{"maxBytes": h.maxUploadBytes()})
		return
	}

	sanitized, err := util.SanitizeFileName(req.FileName)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid fileName", nil)
		return
	}

	key := path.Join(h.newID(), sanitized)
	expires := h.expires()
	url, err := h.Presigner.PresignPut(c.Request.Context(), key, expires)
	if err != nil {
		telemetry.Error("uploads.presign.failed", map[string]any{
			"err":          err.Error(),
			"storage_key":  key,
			"content_type": req.ContentType,
			"size_bytes":   req.SizeBytes,
			"request_id":   middleware.RequestIDFromContext(c),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate upload url", nil)
		return
	}

	respond.JSON(c, http.StatusOK, presignResponse{
		UploadURL:        url,
		StorageKey:       key,
		ExpiresInSeconds: int64(expires.Seconds()),
	})
}

func (h *Handler) maxUploadBytes() int64 {
	if h.MaxUploadBytes > 0 {
		return h.MaxUploadBytes
	}
	return defaultMaxUploadBytes
}

func (h *Handler) expires() time.Duration {
	if h.Expires > 0 {
		return h.Expires
	}
	return defaultPresignExpires
}

func (h *Handler) newID() string {
	if h.NewID != nil {
		return h.NewID()
	}
	return uuid.NewString()
}
