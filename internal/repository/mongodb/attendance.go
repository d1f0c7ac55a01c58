package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/attendance"
	"github.com/furnishop/shop-backend-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// attendanceDocument keeps the calendar day as a string next to the BSON
// datetime; the unique index is on (employee_id, day).
type attendanceDocument struct {
	ID            string             `bson:"_id"`
	EmployeeID    string             `bson:"employee_id"`
	Date          primitive.DateTime `bson:"date"`
	Day           string             `bson:"day"`
	Morning       *string            `bson:"morning,omitempty"`
	Afternoon     *string            `bson:"afternoon,omitempty"`
	Status        string             `bson:"status"`
	OvertimeHours *float64           `bson:"overtime_hours,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func newAttendanceDocument(a attendance.Attendance) attendanceDocument {
	return attendanceDocument{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		Date:          primitive.NewDateTimeFromTime(a.Date),
		Day:           a.Date.Format(time.DateOnly),
		Morning:       a.Morning,
		Afternoon:     a.Afternoon,
		Status:        string(a.Status),
		OvertimeHours: a.OvertimeHours,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (d attendanceDocument) entity(loc *time.Location) (attendance.Attendance, error) {
	date, err := attendance.NormalizeDate(d.Date, loc)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("attendance %s: %w", d.ID, err)
	}
	return attendance.Attendance{
		ID:            d.ID,
		EmployeeID:    d.EmployeeID,
		Date:          date,
		Morning:       d.Morning,
		Afternoon:     d.Afternoon,
		Status:        attendance.Status(d.Status),
		OvertimeHours: d.OvertimeHours,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

type attendanceRepositoryImpl struct {
	collection *mongo.Collection
	loc        *time.Location
}

// NewAttendanceRepository returns a repository whose dates are read back as
// midnights in loc.
func NewAttendanceRepository(db *database.MongoDB, loc *time.Location) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{collection: db.Collection(database.AttendanceCollection), loc: loc}
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	if _, err := r.collection.InsertOne(ctx, newAttendanceDocument(newAttendance)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceAlreadyExists
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return newAttendance, nil
}

func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	var doc attendanceDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id %s: %w", id, err)
	}
	return doc.entity(r.loc)
}

func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	query := bson.M{}
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		query["employee_id"] = *filter.EmployeeID
	}
	if filter.Status != nil && *filter.Status != "" {
		query["status"] = *filter.Status
	}
	if dateRange := dayRange(filter.From, filter.To); len(dateRange) > 0 {
		query["day"] = dateRange
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "day", Value: sortDirection(filter.SortOrder)}, {Key: "_id", Value: 1}}).
		SetSkip(skip(filter.Page, filter.Limit)).
		SetLimit(int64(filter.Limit))

	records, err := r.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *attendanceRepositoryImpl) ListByDateRange(ctx context.Context, from, to time.Time, employeeIDs []string) ([]attendance.Attendance, error) {
	query := bson.M{"day": dayRange(&from, &to)}
	if len(employeeIDs) > 0 {
		query["employee_id"] = bson.M{"$in": employeeIDs}
	}
	return r.find(ctx, query, options.Find().SetSort(bson.D{{Key: "day", Value: 1}, {Key: "_id", Value: 1}}))
}

// dayRange filters on the day string, which sorts like the date
func dayRange(from, to *time.Time) bson.M {
	query := bson.M{}
	if from != nil {
		query["$gte"] = from.Format(time.DateOnly)
	}
	if to != nil {
		query["$lte"] = to.Format(time.DateOnly)
	}
	return query
}

func (r *attendanceRepositoryImpl) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]attendance.Attendance, error) {
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []attendanceDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode attendances: %w", err)
	}

	records := make([]attendance.Attendance, 0, len(docs))
	for _, doc := range docs {
		a, err := doc.entity(r.loc)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, nil
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, updated attendance.Attendance) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": updated.ID}, newAttendanceDocument(updated))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return attendance.ErrAttendanceAlreadyExists
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if result.MatchedCount == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if result.DeletedCount == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
