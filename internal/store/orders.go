// Package store persists an audit trail of every order the gateway signs
// and submits.
package store

import (
	"context"
	"time"

	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OrderRecord is one signed order and its submission outcome.
type OrderRecord struct {
	ID          uint   `gorm:"primaryKey"`
	RequestID   string `gorm:"index"`
	OrderID     string `gorm:"index"`
	TokenID     string `gorm:"index"`
	Maker       string
	Side        string
	MakerAmount string
	TakerAmount string
	OrderType   string
	Salt        int64
	Signature   string
	Status      string `gorm:"index"`
	ErrorMsg    string
	CreatedAt   time.Time
}

func (OrderRecord) TableName() string {
	return "order_records"
}

type OrderStore struct {
	db *gorm.DB
}

func NewDB(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
}

func NewOrderStore(db *gorm.DB) (*OrderStore, error) {
	if err := db.AutoMigrate(&OrderRecord{}); err != nil {
		return nil, err
	}
	return &OrderStore{db: db}, nil
}

// RecordSubmission writes the signed order and the upstream outcome in one
// row. A nil response means submission failed before the exchange answered.
func (s *OrderStore) RecordSubmission(ctx context.Context, requestID string, order *clobtypes.SignedOrder, orderType clobtypes.OrderType, resp *clobtypes.PostOrderResponse, submitErr error) error {
	rec := &OrderRecord{
		RequestID:   requestID,
		TokenID:     order.TokenID,
		Maker:       order.Maker,
		Side:        string(order.Side),
		MakerAmount: order.MakerAmount,
		TakerAmount: order.TakerAmount,
		OrderType:   string(orderType),
		Salt:        order.Salt,
		Signature:   order.Signature,
		CreatedAt:   time.Now().UTC(),
	}

	switch {
	case submitErr != nil:
		rec.Status = "failed"
		rec.ErrorMsg = submitErr.Error()
	case resp != nil && resp.Success:
		rec.Status = "submitted"
		rec.OrderID = resp.OrderID
	default:
		rec.Status = "rejected"
		if resp != nil {
			rec.ErrorMsg = resp.ErrorMsg
		}
	}

	return s.db.WithContext(ctx).Create(rec).Error
}

// ListRecent returns the latest records, newest first.
func (s *OrderStore) ListRecent(ctx context.Context, limit int) ([]OrderRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var out []OrderRecord
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// FindByOrderID looks up one record by the exchange-assigned order id.
func (s *OrderStore) FindByOrderID(ctx context.Context, orderID string) (*OrderRecord, error) {
	var rec OrderRecord
	err := s.db.WithContext(ctx).Where("order_id = ?", orderID).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
