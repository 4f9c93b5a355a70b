package admission

import (
	"errors"
	"net/http"

	"gatekeeper/internal/shared/middleware"
	"gatekeeper/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// Scan handles POST /api/v1/admission/scan
func (c *Controller) Scan(ctx *gin.Context) {
	var req ScanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondScanError(ctx, &ScanError{
			Kind:    KindValidation,
			Message: "invalid scan request: " + err.Error(),
		})
		return
	}

	staffID := middleware.StaffIDFromContext(ctx)

	result, err := c.service.Scan(ctx.Request.Context(), req, staffID)
	if err != nil {
		var scanErr *ScanError
		if errors.As(err, &scanErr) {
			respondScanError(ctx, scanErr)
			return
		}
		respondScanError(ctx, &ScanError{
			Kind:    KindInternal,
			Message: "admission engine failure",
		})
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Admission recorded", result, nil)
}

// Status handles GET /api/v1/admission/status/:token
func (c *Controller) Status(ctx *gin.Context) {
	token := ctx.Param("token")
	if token == "" {
		respondScanError(ctx, &ScanError{
			Kind:    KindValidation,
			Message: "credential token is required",
		})
		return
	}

	status, err := c.service.Status(ctx.Request.Context(), token)
	if err != nil {
		var scanErr *ScanError
		if errors.As(err, &scanErr) {
			respondScanError(ctx, scanErr)
			return
		}
		respondScanError(ctx, &ScanError{
			Kind:    KindInternal,
			Message: "admission engine failure",
		})
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket status retrieved", status, nil)
}

// respondScanError renders the error taxonomy. The retryable flag tells the
// terminal whether the same request can simply be re-sent ("nothing
// happened") or the credential is in a state that needs a supervisor.
func respondScanError(ctx *gin.Context, scanErr *ScanError) {
	payload := gin.H{
		"error_kind": scanErr.Kind,
		"retryable":  scanErr.Kind.Retryable(),
	}
	if scanErr.Total > 0 {
		payload["checked_in"] = scanErr.CheckedIn
		payload["total"] = scanErr.Total
		payload["remaining"] = scanErr.Remaining
	}

	response.RespondJSON(ctx, "error", scanErr.Kind.HTTPStatus(), scanErr.Message, nil, payload)
}
