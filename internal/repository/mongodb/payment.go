package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
	"github.com/furnishop/shop-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type paymentDocument struct {
	ID          string               `bson:"_id"`
	EmployeeID  string               `bson:"employee_id"`
	PeriodStart string               `bson:"period_start"`
	PeriodEnd   string               `bson:"period_end"`
	Amount      primitive.Decimal128 `bson:"amount"`
	Status      string               `bson:"status"`
	PaidAt      *time.Time           `bson:"paid_at,omitempty"`
	PaidBy      *string              `bson:"paid_by,omitempty"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

func (d paymentDocument) entity(loc *time.Location) (payroll.Payment, error) {
	start, err := time.ParseInLocation(time.DateOnly, d.PeriodStart, loc)
	if err != nil {
		return payroll.Payment{}, fmt.Errorf("payment %s: invalid period_start: %w", d.ID, err)
	}
	end, err := time.ParseInLocation(time.DateOnly, d.PeriodEnd, loc)
	if err != nil {
		return payroll.Payment{}, fmt.Errorf("payment %s: invalid period_end: %w", d.ID, err)
	}
	amount, err := decimal.NewFromString(d.Amount.String())
	if err != nil {
		return payroll.Payment{}, fmt.Errorf("payment %s: invalid amount: %w", d.ID, err)
	}
	return payroll.Payment{
		ID:          d.ID,
		EmployeeID:  d.EmployeeID,
		PeriodStart: start,
		PeriodEnd:   end,
		Amount:      amount,
		Status:      payroll.PayStatus(d.Status),
		PaidAt:      d.PaidAt,
		PaidBy:      d.PaidBy,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

type paymentRepositoryImpl struct {
	collection *mongo.Collection
	loc        *time.Location
}

func NewPaymentRepository(db *database.MongoDB, loc *time.Location) payroll.PaymentRepository {
	return &paymentRepositoryImpl{collection: db.Collection(database.PaymentCollection), loc: loc}
}

func periodFilter(employeeID string, start, end time.Time) bson.M {
	return bson.M{
		"employee_id":  employeeID,
		"period_start": start.Format(time.DateOnly),
		"period_end":   end.Format(time.DateOnly),
	}
}

func (r *paymentRepositoryImpl) Upsert(ctx context.Context, payment payroll.Payment) (payroll.Payment, error) {
	amount, err := primitive.ParseDecimal128(payment.Amount.String())
	if err != nil {
		return payroll.Payment{}, fmt.Errorf("failed to convert amount: %w", err)
	}

	update := bson.M{
		"$set": bson.M{
			"amount":     amount,
			"status":     string(payment.Status),
			"paid_at":    payment.PaidAt,
			"paid_by":    payment.PaidBy,
			"updated_at": payment.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":        payment.ID,
			"created_at": payment.CreatedAt,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc paymentDocument
	err = r.collection.FindOneAndUpdate(ctx, periodFilter(payment.EmployeeID, payment.PeriodStart, payment.PeriodEnd), update, opts).Decode(&doc)
	if err != nil {
		return payroll.Payment{}, fmt.Errorf("failed to upsert payment: %w", err)
	}
	return doc.entity(r.loc)
}

func (r *paymentRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time) (payroll.Payment, error) {
	var doc paymentDocument
	if err := r.collection.FindOne(ctx, periodFilter(employeeID, start, end)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return payroll.Payment{}, payroll.ErrPaymentNotFound
		}
		return payroll.Payment{}, fmt.Errorf("failed to get payment: %w", err)
	}
	return doc.entity(r.loc)
}

func (r *paymentRepositoryImpl) ListByPeriod(ctx context.Context, start, end time.Time) ([]payroll.Payment, error) {
	query := bson.M{
		"period_start": start.Format(time.DateOnly),
		"period_end":   end.Format(time.DateOnly),
	}
	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "employee_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []paymentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}

	payments := make([]payroll.Payment, 0, len(docs))
	for _, doc := range docs {
		p, err := doc.entity(r.loc)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func (r *paymentRepositoryImpl) Delete(ctx context.Context, employeeID string, start, end time.Time) error {
	result, err := r.collection.DeleteOne(ctx, periodFilter(employeeID, start, end))
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if result.DeletedCount == 0 {
		return payroll.ErrPaymentNotFound
	}
	return nil
}
