package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/attendance"
	"github.com/furnishop/shop-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.morning, a.afternoon, a.status, a.overtime_hours,
	a.created_at, a.updated_at, e.full_name`

type attendanceRepository struct {
	db  *database.DB
	loc *time.Location
}

// NewAttendanceRepository returns a repository whose DATE values are read
// back as midnights in loc.
func NewAttendanceRepository(db *database.DB, loc *time.Location) attendance.AttendanceRepository {
	return &attendanceRepository{db: db, loc: loc}
}

func (a *attendanceRepository) scan(row pgx.Row) (attendance.Attendance, error) {
	var (
		att    attendance.Attendance
		date   time.Time
		status string
	)
	err := row.Scan(
		&att.ID, &att.EmployeeID, &date, &att.Morning, &att.Afternoon, &status, &att.OvertimeHours,
		&att.CreatedAt, &att.UpdatedAt, &att.EmployeeName,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.Date = inLocation(date, a.loc)
	att.Status = attendance.Status(status)
	return att, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, date, morning, afternoon, status, overtime_hours, created_at, updated_at
		) VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9)
	`
	_, err := q.Exec(ctx, query,
		newAttendance.ID, newAttendance.EmployeeID, newAttendance.Date.Format(time.DateOnly),
		newAttendance.Morning, newAttendance.Afternoon, string(newAttendance.Status), newAttendance.OvertimeHours,
		newAttendance.CreatedAt, newAttendance.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceAlreadyExists
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return a.GetByID(ctx, newAttendance.ID)
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT` + attendanceColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1`

	att, err := a.scan(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id %s: %w", id, err)
	}
	return att, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d::date", argIdx))
		args = append(args, filter.From.Format(time.DateOnly))
		argIdx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d::date", argIdx))
		args = append(args, filter.To.Format(time.DateOnly))
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM attendances a WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	sortOrder := "DESC"
	if strings.ToUpper(filter.SortOrder) == "ASC" {
		sortOrder = "ASC"
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.date %s, a.id
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, whereClause, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	records, err := a.query(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListByDateRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDateRange(ctx context.Context, from, to time.Time, employeeIDs []string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT` + attendanceColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.date BETWEEN $1::date AND $2::date`
	args := []interface{}{from.Format(time.DateOnly), to.Format(time.DateOnly)}

	if len(employeeIDs) > 0 {
		query += ` AND a.employee_id = ANY($3)`
		args = append(args, employeeIDs)
	}
	query += ` ORDER BY a.date, a.id`

	return a.query(ctx, q, query, args...)
}

func (a *attendanceRepository) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.Attendance, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := a.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances SET
			date = $2::date, morning = $3, afternoon = $4, status = $5, overtime_hours = $6, updated_at = $7
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		att.ID, att.Date.Format(time.DateOnly), att.Morning, att.Afternoon, string(att.Status),
		att.OvertimeHours, att.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.ErrAttendanceAlreadyExists
		}
		return fmt.Errorf("failed to update attendance with id %s: %w", att.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
