package models

import (
	"time"

	"github.com/oms/backend/internal/domain/order"
)

// OrderLineModel is the persistence model for the raw order ledger.
// Vendor timestamps stay as the strings they arrived in; normalization
// happens in the domain at comparison time.
type OrderLineModel struct {
	ID              int64   `gorm:"primaryKey;autoIncrement"`
	PlatformName    string  `gorm:"type:varchar(100);index"`
	SiteOrderNo     string  `gorm:"type:varchar(100);not null;index"`
	ProductName     string  `gorm:"type:varchar(500)"`
	OptionText      string  `gorm:"type:varchar(500)"`
	SiteProductCode *string `gorm:"type:varchar(100);index"`
	MatchedKitID    *string `gorm:"type:varchar(100);index"`
	Qty             int     `gorm:"not null;default:0"`
	OrderedAt       string  `gorm:"type:varchar(50)"`
	PaidAt          string  `gorm:"type:varchar(50);index"`
	CollectedAt     string  `gorm:"type:varchar(50)"`
	ReceiverName    string  `gorm:"type:varchar(100)"`
	ReceiverPhone   string  `gorm:"type:varchar(50)"`
	ReceiverAddr    string  `gorm:"type:varchar(500)"`
	ProcessStatus   *string `gorm:"type:varchar(20);index"`
	CorrelationID   *string `gorm:"type:uuid;uniqueIndex"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "raw_order_lines"
}

// ToDomain converts the persistence model to a domain OrderLine
func (m *OrderLineModel) ToDomain() *order.OrderLine {
	status := order.ProcessStatusPending
	if m.ProcessStatus != nil {
		status = order.ProcessStatus(*m.ProcessStatus)
	}
	return &order.OrderLine{
		ID:              m.ID,
		PlatformName:    m.PlatformName,
		SiteOrderNo:     m.SiteOrderNo,
		ProductName:     m.ProductName,
		OptionText:      m.OptionText,
		SiteProductCode: m.SiteProductCode,
		MatchedKitID:    m.MatchedKitID,
		Qty:             m.Qty,
		OrderedAt:       m.OrderedAt,
		PaidAt:          m.PaidAt,
		CollectedAt:     m.CollectedAt,
		ReceiverName:    m.ReceiverName,
		ReceiverPhone:   m.ReceiverPhone,
		ReceiverAddr:    m.ReceiverAddr,
		ProcessStatus:   status,
		CorrelationID:   m.CorrelationID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain OrderLine
func (m *OrderLineModel) FromDomain(o *order.OrderLine) {
	m.ID = o.ID
	m.PlatformName = o.PlatformName
	m.SiteOrderNo = o.SiteOrderNo
	m.ProductName = o.ProductName
	m.OptionText = o.OptionText
	m.SiteProductCode = o.SiteProductCode
	m.MatchedKitID = o.MatchedKitID
	m.Qty = o.Qty
	m.OrderedAt = o.OrderedAt
	m.PaidAt = o.PaidAt
	m.CollectedAt = o.CollectedAt
	m.ReceiverName = o.ReceiverName
	m.ReceiverPhone = o.ReceiverPhone
	m.ReceiverAddr = o.ReceiverAddr
	if o.ProcessStatus == order.ProcessStatusPending {
		m.ProcessStatus = nil
	} else {
		s := o.ProcessStatus.String()
		m.ProcessStatus = &s
	}
	m.CorrelationID = o.CorrelationID
	m.CreatedAt = o.CreatedAt
	m.UpdatedAt = o.UpdatedAt
}
