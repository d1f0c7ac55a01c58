package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/employee"
	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
	"github.com/furnishop/shop-backend-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type employeeDocument struct {
	ID            string                `bson:"_id"`
	FullName      string                `bson:"full_name"`
	PhoneNumber   string                `bson:"phone_number"`
	JobTitle      *string               `bson:"job_title,omitempty"`
	PaymentMethod string                `bson:"payment_method"`
	BankAccount   *string               `bson:"bank_account,omitempty"`
	DailyRate     *primitive.Decimal128 `bson:"daily_rate,omitempty"`
	MonthlyRate   *primitive.Decimal128 `bson:"monthly_rate,omitempty"`
	HourlyRate    *primitive.Decimal128 `bson:"hourly_rate,omitempty"`
	ChatID        *string               `bson:"chat_id,omitempty"`
	CreatedAt     time.Time             `bson:"created_at"`
	UpdatedAt     time.Time             `bson:"updated_at"`
}

func newEmployeeDocument(e employee.Employee) (employeeDocument, error) {
	doc := employeeDocument{
		ID:            e.ID,
		FullName:      e.FullName,
		PhoneNumber:   e.PhoneNumber,
		JobTitle:      e.JobTitle,
		PaymentMethod: string(e.PaymentMethod),
		BankAccount:   e.BankAccount,
		ChatID:        e.ChatID,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	var err error
	if doc.DailyRate, err = toDecimal128(e.DailyRate); err != nil {
		return doc, err
	}
	if doc.MonthlyRate, err = toDecimal128(e.MonthlyRate); err != nil {
		return doc, err
	}
	if doc.HourlyRate, err = toDecimal128(e.HourlyRate); err != nil {
		return doc, err
	}
	return doc, nil
}

func (d employeeDocument) entity() (employee.Employee, error) {
	e := employee.Employee{
		ID:            d.ID,
		FullName:      d.FullName,
		PhoneNumber:   d.PhoneNumber,
		JobTitle:      d.JobTitle,
		PaymentMethod: payroll.PaymentMethod(d.PaymentMethod),
		BankAccount:   d.BankAccount,
		ChatID:        d.ChatID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	var err error
	if e.DailyRate, err = fromDecimal128(d.DailyRate); err != nil {
		return e, err
	}
	if e.MonthlyRate, err = fromDecimal128(d.MonthlyRate); err != nil {
		return e, err
	}
	if e.HourlyRate, err = fromDecimal128(d.HourlyRate); err != nil {
		return e, err
	}
	return e, nil
}

type employeeRepositoryImpl struct {
	collection *mongo.Collection
}

func NewEmployeeRepository(db *database.MongoDB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{collection: db.Collection(database.EmployeeCollection)}
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	doc, err := newEmployeeDocument(newEmployee)
	if err != nil {
		return employee.Employee{}, err
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return employee.Employee{}, employee.ErrPhoneNumberExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return newEmployee, nil
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	var doc employeeDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id %s: %w", id, err)
	}
	return doc.entity()
}

func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	query := bson.M{}
	if filter.Search != nil && *filter.Search != "" {
		query["full_name"] = primitive.Regex{Pattern: regexp.QuoteMeta(*filter.Search), Options: "i"}
	}
	if filter.PaymentMethod != nil && *filter.PaymentMethod != "" {
		query["payment_method"] = *filter.PaymentMethod
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	sortField := "full_name"
	if filter.SortBy == "created_at" {
		sortField = "created_at"
	}
	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDirection(filter.SortOrder)}, {Key: "_id", Value: 1}}).
		SetSkip(skip(filter.Page, filter.Limit)).
		SetLimit(int64(filter.Limit))

	employees, err := r.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

func (r *employeeRepositoryImpl) ListByPaymentMethod(ctx context.Context, method payroll.PaymentMethod) ([]employee.Employee, error) {
	query := bson.M{}
	if method != "" {
		query["payment_method"] = string(method)
	}
	return r.find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (r *employeeRepositoryImpl) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]employee.Employee, error) {
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []employeeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode employees: %w", err)
	}

	employees := make([]employee.Employee, 0, len(docs))
	for _, doc := range docs {
		e, err := doc.entity()
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, nil
}

func (r *employeeRepositoryImpl) Update(ctx context.Context, updated employee.Employee) error {
	doc, err := newEmployeeDocument(updated)
	if err != nil {
		return err
	}

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": updated.ID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return employee.ErrPhoneNumberExists
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if result.MatchedCount == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if result.DeletedCount == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
