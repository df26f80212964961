package models

import (
	"encoding/json"
	"time"

	"github.com/oms/backend/internal/domain/promotion"
)

// PromoRuleModel is the persistence model for promotion rules. Target
// codes are a JSONB array so a rule can name several qualifying SKUs.
type PromoRuleModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	PromoGroupID string `gorm:"type:varchar(100)"`
	PromoName    string `gorm:"type:varchar(200);not null"`
	PromoType    string `gorm:"type:varchar(20);not null;index"`
	TargetCodes  string `gorm:"type:jsonb;not null;default:'[]'"`
	ConditionQty int    `gorm:"not null;default:1"`
	GiftQty      int    `gorm:"not null;default:0"`
	GiftKitID    string `gorm:"type:varchar(100);not null"`
	PlatformName *string
	StartDate    time.Time `gorm:"type:date;not null;index"`
	EndDate      time.Time `gorm:"type:date;not null;index"`
	CreatedAt    time.Time
}

// TableName returns the table name for GORM
func (PromoRuleModel) TableName() string {
	return "promo_rules"
}

// ToDomain converts the persistence model to a domain Rule
func (m *PromoRuleModel) ToDomain() (*promotion.Rule, error) {
	var targets []string
	if m.TargetCodes != "" {
		if err := json.Unmarshal([]byte(m.TargetCodes), &targets); err != nil {
			return nil, err
		}
	}
	return &promotion.Rule{
		ID:           m.ID,
		PromoGroupID: m.PromoGroupID,
		PromoName:    m.PromoName,
		PromoType:    promotion.PromoType(m.PromoType),
		TargetCodes:  targets,
		ConditionQty: m.ConditionQty,
		GiftQty:      m.GiftQty,
		GiftKitID:    m.GiftKitID,
		PlatformName: m.PlatformName,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		CreatedAt:    m.CreatedAt,
	}, nil
}

// FromDomain populates the persistence model from a domain Rule
func (m *PromoRuleModel) FromDomain(r *promotion.Rule) error {
	targets, err := json.Marshal(r.TargetCodes)
	if err != nil {
		return err
	}
	m.ID = r.ID
	m.PromoGroupID = r.PromoGroupID
	m.PromoName = r.PromoName
	m.PromoType = r.PromoType.String()
	m.TargetCodes = string(targets)
	m.ConditionQty = r.ConditionQty
	m.GiftQty = r.GiftQty
	m.GiftKitID = r.GiftKitID
	m.PlatformName = r.PlatformName
	m.StartDate = r.StartDate
	m.EndDate = r.EndDate
	m.CreatedAt = r.CreatedAt
	return nil
}

// GiftApplicationModel is the persistence model for gift application
// audit records. Source order ids are a JSONB array of line ids.
type GiftApplicationModel struct {
	ID               int64  `gorm:"primaryKey;autoIncrement"`
	RuleID           int64  `gorm:"not null;index"`
	GiftKitID        string `gorm:"type:varchar(100);not null"`
	GiftQty          int    `gorm:"not null"`
	ReceiverName     string `gorm:"type:varchar(100)"`
	ReceiverPhone    string `gorm:"type:varchar(50)"`
	ReceiverAddr     string `gorm:"type:varchar(500)"`
	SourceOrderIDs   string `gorm:"type:jsonb;not null;default:'[]'"`
	GeneratedOrderID int64  `gorm:"not null;index"`
	IsConfirmed      bool   `gorm:"not null;default:false"`
	CreatedAt        time.Time
}

// TableName returns the table name for GORM
func (GiftApplicationModel) TableName() string {
	return "order_gifts"
}

// ToDomain converts the persistence model to a domain GiftApplicationRecord
func (m *GiftApplicationModel) ToDomain() (*promotion.GiftApplicationRecord, error) {
	var sourceIDs []int64
	if m.SourceOrderIDs != "" {
		if err := json.Unmarshal([]byte(m.SourceOrderIDs), &sourceIDs); err != nil {
			return nil, err
		}
	}
	return &promotion.GiftApplicationRecord{
		ID:               m.ID,
		RuleID:           m.RuleID,
		GiftKitID:        m.GiftKitID,
		GiftQty:          m.GiftQty,
		ReceiverName:     m.ReceiverName,
		ReceiverPhone:    m.ReceiverPhone,
		ReceiverAddr:     m.ReceiverAddr,
		SourceOrderIDs:   sourceIDs,
		GeneratedOrderID: m.GeneratedOrderID,
		IsConfirmed:      m.IsConfirmed,
		CreatedAt:        m.CreatedAt,
	}, nil
}

// FromDomain populates the persistence model from a domain GiftApplicationRecord
func (m *GiftApplicationModel) FromDomain(r *promotion.GiftApplicationRecord) error {
	sourceIDs, err := json.Marshal(r.SourceOrderIDs)
	if err != nil {
		return err
	}
	m.ID = r.ID
	m.RuleID = r.RuleID
	m.GiftKitID = r.GiftKitID
	m.GiftQty = r.GiftQty
	m.ReceiverName = r.ReceiverName
	m.ReceiverPhone = r.ReceiverPhone
	m.ReceiverAddr = r.ReceiverAddr
	m.SourceOrderIDs = string(sourceIDs)
	m.GeneratedOrderID = r.GeneratedOrderID
	m.IsConfirmed = r.IsConfirmed
	m.CreatedAt = r.CreatedAt
	return nil
}
