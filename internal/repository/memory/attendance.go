package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/attendance"
)

type attendanceRepositoryImpl struct {
	mu      sync.RWMutex
	records map[string]attendance.Attendance
}

func NewAttendanceRepository() attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{records: make(map[string]attendance.Attendance)}
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format(time.DateOnly)
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dayTaken(newAttendance, "") {
		return attendance.Attendance{}, attendance.ErrAttendanceAlreadyExists
	}
	r.records[newAttendance.ID] = newAttendance
	return newAttendance, nil
}

func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []attendance.Attendance
	for _, a := range r.records {
		if filter.EmployeeID != nil && *filter.EmployeeID != "" && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(a.Status) != *filter.Status {
			continue
		}
		if filter.From != nil && a.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && a.Date.After(*filter.To) {
			continue
		}
		matched = append(matched, a)
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if filter.SortOrder == "desc" {
			a, b = b, a
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.ID < b.ID
	})

	return paginate(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}

func (r *attendanceRepositoryImpl) ListByDateRange(ctx context.Context, from, to time.Time, employeeIDs []string) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var wanted map[string]bool
	if len(employeeIDs) > 0 {
		wanted = make(map[string]bool, len(employeeIDs))
		for _, id := range employeeIDs {
			wanted[id] = true
		}
	}

	var result []attendance.Attendance
	for _, a := range r.records {
		if a.Date.Before(from) || a.Date.After(to) {
			continue
		}
		if wanted != nil && !wanted[a.EmployeeID] {
			continue
		}
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, updated attendance.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[updated.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	if r.dayTaken(updated, updated.ID) {
		return attendance.ErrAttendanceAlreadyExists
	}
	r.records[updated.ID] = updated
	return nil
}

func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *attendanceRepositoryImpl) dayTaken(a attendance.Attendance, exceptID string) bool {
	key := dayKey(a.EmployeeID, a.Date)
	for id, existing := range r.records {
		if id != exceptID && dayKey(existing.EmployeeID, existing.Date) == key {
			return true
		}
	}
	return false
}
