package http

import (
	"encoding/json"
	"net/http"

	"github.com/furnishop/shop-backend-go/internal/domain/notification"
	"github.com/furnishop/shop-backend-go/internal/handler/http/response"
)

type NotificationHandler interface {
	Send(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notifService notification.Service
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifService notification.Service) NotificationHandler {
	return &notificationHandlerImpl{notifService: notifService}
}

// Send delivers a raw chat message. Delivery failures are part of the
// result rather than an error status.
func (h *notificationHandlerImpl) Send(w http.ResponseWriter, r *http.Request) {
	var req notification.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, h.notifService.SendMessage(r.Context(), req))
}
