package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/attendance"
	"github.com/furnishop/shop-backend-go/internal/handler/http/middleware"
	"github.com/furnishop/shop-backend-go/internal/handler/http/response"
	"github.com/furnishop/shop-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

const streamKeepalive = 30 * time.Second

type AttendanceHandler interface {
	ListAttendance(w http.ResponseWriter, r *http.Request)
	GetAttendance(w http.ResponseWriter, r *http.Request)
	CreateAttendance(w http.ResponseWriter, r *http.Request)
	UpdateAttendance(w http.ResponseWriter, r *http.Request)
	DeleteAttendance(w http.ResponseWriter, r *http.Request)
	GetStreamToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	jwtService        jwt.Service
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, jwtService jwt.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		jwtService:        jwtService,
	}
}

// StreamTokenResponse is returned by GetStreamToken.
type StreamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// ListAttendance implements AttendanceHandler
func (h *attendanceHandlerImpl) ListAttendance(w http.ResponseWriter, r *http.Request) {
	filter := attendance.AttendanceFilter{
		EmployeeID: getOptionalQueryParam(r, "employee_id"),
		StartDate:  getOptionalQueryParam(r, "start_date"),
		EndDate:    getOptionalQueryParam(r, "end_date"),
		Status:     getOptionalQueryParam(r, "status"),
		Page:       getIntQueryParam(r, "page", 1),
		Limit:      getIntQueryParam(r, "limit", 20),
		SortOrder:  r.URL.Query().Get("sort_order"),
	}

	result, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Attendances, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
		Showing:    result.Showing,
	})
}

// GetAttendance implements AttendanceHandler
func (h *attendanceHandlerImpl) GetAttendance(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetAttendance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateAttendance implements AttendanceHandler
func (h *attendanceHandlerImpl) CreateAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.CreateAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded successfully", result)
}

// UpdateAttendance implements AttendanceHandler
func (h *attendanceHandlerImpl) UpdateAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.UpdateAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated successfully", result)
}

// DeleteAttendance implements AttendanceHandler
func (h *attendanceHandlerImpl) DeleteAttendance(w http.ResponseWriter, r *http.Request) {
	if err := h.attendanceService.DeleteAttendance(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted successfully", nil)
}

// GetStreamToken issues a short-lived token for Stream
func (h *attendanceHandlerImpl) GetStreamToken(w http.ResponseWriter, r *http.Request) {
	subject := middleware.Subject(r.Context())
	if subject == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateStreamToken(subject)
	if err != nil {
		slog.Error("Failed to generate stream token", "error", err)
		response.InternalServerError(w, "Failed to generate stream token")
		return
	}

	response.Success(w, StreamTokenResponse{Token: token, ExpiresIn: expiresIn})
}

// Stream pushes attendance changes as server-sent events. The token comes
// from the query string since EventSource cannot set headers.
func (h *attendanceHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}
	subject, err := h.jwtService.ValidateStreamToken(tokenStr)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cancel := h.attendanceService.Subscribe(r.Context())
	defer cancel()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"subject\":%q}\n\n", subject)
	flusher.Flush()

	keepalive := time.NewTicker(streamKeepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				slog.Warn("Failed to encode attendance event", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: attendance.changed\ndata: %s\n\n", data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
