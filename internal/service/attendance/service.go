package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/attendance"
	"github.com/furnishop/shop-backend-go/internal/domain/employee"
	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
	"github.com/furnishop/shop-backend-go/internal/pkg/sse"
	"github.com/google/uuid"
)

const (
	// Topic is the hub topic attendance changes are published on.
	Topic = "attendance"
	// EventChanged is the SSE event name for attendance changes.
	EventChanged = "attendance.changed"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	hub            *sse.Hub
	loc            *time.Location
	shifts         payroll.Shifts
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	hub *sse.Hub,
	loc *time.Location,
	shifts payroll.Shifts,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		hub:            hub,
		loc:            loc,
		shifts:         shifts,
		now:            time.Now,
	}
}

// CreateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CreateAttendance(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := attendance.ApplyChange(attendance.Attendance{EmployeeID: emp.ID}, req.Change(), s.loc)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}
	now := s.now().UTC()
	record.ID = id.String()
	record.CreatedAt = now
	record.UpdatedAt = now

	created, err := s.attendanceRepo.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	created.EmployeeName = &emp.FullName

	resp := s.toResponse(created)
	s.publish("created", resp)
	slog.Info("Attendance recorded", "attendance_id", created.ID, "employee_id", created.EmployeeID, "date", resp.Date)
	return resp, nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return s.toResponse(record), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(s.loc); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, s.toResponse(r))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	current, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	updated, err := attendance.ApplyChange(current, req.Change(), s.loc)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	updated.UpdatedAt = s.now().UTC()

	if err := s.attendanceRepo.Update(ctx, updated); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	resp := s.toResponse(updated)
	s.publish("updated", resp)
	slog.Info("Attendance updated", "attendance_id", updated.ID, "employee_id", updated.EmployeeID)
	return resp, nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	current, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.attendanceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish("deleted", s.toResponse(current))
	slog.Info("Attendance deleted", "attendance_id", id)
	return nil
}

// Subscribe implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Subscribe(ctx context.Context) (<-chan attendance.ChangeEvent, func()) {
	events, unsubscribe := s.hub.Subscribe(Topic)
	out := make(chan attendance.ChangeEvent)
	done := make(chan struct{})

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				change, ok := ev.Data.(attendance.ChangeEvent)
				if !ok {
					continue
				}
				select {
				case out <- change:
				case <-ctx.Done():
					return
				case <-done:
					return
				}
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			unsubscribe()
		})
	}
	return out, cancel
}

func (s *AttendanceServiceImpl) publish(action string, resp attendance.AttendanceResponse) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(Topic, sse.Event{
		Name: EventChanged,
		Data: attendance.ChangeEvent{Action: action, Attendance: resp},
	})
}

func (s *AttendanceServiceImpl) toResponse(a attendance.Attendance) attendance.AttendanceResponse {
	var hours float64
	if a.Status != attendance.StatusAbsent {
		// stored records were validated on write; a bad clock just shows zero
		if h, err := payroll.WorkHours(a.Morning, a.Afternoon, s.shifts); err == nil {
			hours = h
		}
	}

	return attendance.AttendanceResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		EmployeeName:  a.EmployeeName,
		Date:          a.Date.In(s.loc).Format(time.DateOnly),
		Morning:       a.Morning,
		Afternoon:     a.Afternoon,
		Status:        a.Status,
		OvertimeHours: a.OvertimeHours,
		WorkHours:     hours,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
