package models

import (
	"github.com/oms/backend/internal/domain/bom"
	"github.com/shopspring/decimal"
)

// KitBOMItemModel is the persistence model for kit BOM rows
type KitBOMItemModel struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	KitID      string          `gorm:"type:varchar(100);not null;index"`
	ProductID  string          `gorm:"type:varchar(100);not null;index"`
	Multiplier decimal.Decimal `gorm:"type:decimal(12,4);not null;default:1"`
}

// TableName returns the table name for GORM
func (KitBOMItemModel) TableName() string {
	return "kit_bom_items"
}

// ToDomain converts the persistence model to a domain KitBOMItem
func (m *KitBOMItemModel) ToDomain() bom.KitBOMItem {
	return bom.KitBOMItem{
		ID:         m.ID,
		KitID:      m.KitID,
		ProductID:  m.ProductID,
		Multiplier: m.Multiplier,
	}
}

// ProductModel is the persistence model for the ERP product master
type ProductModel struct {
	ProductID string  `gorm:"type:varchar(100);primaryKey"`
	Name      string  `gorm:"type:varchar(200);not null"`
	Spec      *string `gorm:"type:varchar(200)"`
	BalQty    *decimal.Decimal
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "erp_products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() bom.Product {
	return bom.Product{
		ProductID: m.ProductID,
		Name:      m.Name,
		Spec:      m.Spec,
		BalQty:    m.BalQty,
	}
}
