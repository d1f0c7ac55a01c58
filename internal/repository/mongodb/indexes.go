// Package mongodb stores employees, attendance and payroll payments as
// MongoDB documents.
package mongodb

import (
	"context"
	"fmt"

	"github.com/furnishop/shop-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique and lookup indexes the repositories rely on
func EnsureIndexes(ctx context.Context, db *database.MongoDB) error {
	indexes := map[string][]mongo.IndexModel{
		database.EmployeeCollection: {
			{Keys: bson.D{{Key: "phone_number", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_phone_number")},
			{Keys: bson.D{{Key: "payment_method", Value: 1}, {Key: "full_name", Value: 1}}, Options: options.Index().SetName("payment_method_full_name")},
		},
		database.AttendanceCollection: {
			{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "day", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_employee_day")},
			{Keys: bson.D{{Key: "date", Value: -1}}, Options: options.Index().SetName("date_desc")},
		},
		database.PaymentCollection: {
			{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "period_start", Value: 1}, {Key: "period_end", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_employee_period")},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}
	return nil
}

func toDecimal128(d *decimal.Decimal) (*primitive.Decimal128, error) {
	if d == nil {
		return nil, nil
	}
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return nil, fmt.Errorf("failed to convert decimal %s: %w", d.String(), err)
	}
	return &v, nil
}

func fromDecimal128(v *primitive.Decimal128) (*decimal.Decimal, error) {
	if v == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return nil, fmt.Errorf("failed to convert decimal128 %s: %w", v.String(), err)
	}
	return &d, nil
}

func sortDirection(order string) int {
	if order == "desc" {
		return -1
	}
	return 1
}

func skip(page, limit int) int64 {
	if page < 1 {
		page = 1
	}
	return int64((page - 1) * limit)
}
