package handler

import (
	"net/http"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/delivery/http/response"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/errors"
	"gatekeeper/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ActivityHandler serves the caller's recorded auth events.
type ActivityHandler struct {
	audit usecase.AuditUsecase
}

// NewActivityHandler is the constructor for ActivityHandler, injected by Fx.
func NewActivityHandler(audit usecase.AuditUsecase) *ActivityHandler {
	return &ActivityHandler{audit: audit}
}

// ActivityOutput lists events newest first.
type ActivityOutput struct {
	Events []*entity.AuthEvent `json:"events"`
}

// List returns the authenticated caller's newest events. Optional query
// parameter: limit.
func (h *ActivityHandler) List(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	var limit int
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("limit must be an integer"))
	}

	events, err := h.audit.RecentActivity(c.Request().Context(), userID, limit)
	if err != nil {
		return errors.WithStack(err)
	}
	if events == nil {
		events = []*entity.AuthEvent{}
	}

	return response.Success(c, http.StatusOK, ActivityOutput{Events: events}, "Recent activity")
}
