package bom

import (
	"context"

	"github.com/shopspring/decimal"
)

// KitBOMItem maps one kit id to a physical component product and the
// quantity multiplier of that component per kit unit. Multipliers can
// be fractional (bulk goods split across kits).
type KitBOMItem struct {
	ID         int64
	KitID      string
	ProductID  string
	Multiplier decimal.Decimal
}

// Product is a row from the ERP product master, consulted by dispatch
// aggregation for display names and current stock balance.
type Product struct {
	ProductID string
	Name      string
	Spec      *string
	BalQty    *decimal.Decimal
}

// KitBOMRepository defines the interface for kit BOM persistence
type KitBOMRepository interface {
	// FindAll returns every BOM row
	FindAll(ctx context.Context) ([]KitBOMItem, error)

	// FindByKitIDs returns BOM rows for the given kit ids
	FindByKitIDs(ctx context.Context, kitIDs []string) ([]KitBOMItem, error)
}

// ProductRepository defines the interface for product master reads
type ProductRepository interface {
	// FindAll returns every product master row
	FindAll(ctx context.Context) ([]Product, error)
}

// Explosion indexes BOM rows by kit id for repeated lookups during one
// aggregation pass.
type Explosion struct {
	byKit map[string][]KitBOMItem
}

// NewExplosion builds an Explosion from BOM rows
func NewExplosion(items []KitBOMItem) *Explosion {
	byKit := make(map[string][]KitBOMItem)
	for _, it := range items {
		byKit[it.KitID] = append(byKit[it.KitID], it)
	}
	return &Explosion{byKit: byKit}
}

// Components returns the BOM rows for a kit, or nil when the kit has
// no BOM (the caller reports these separately rather than dropping
// them silently).
func (e *Explosion) Components(kitID string) []KitBOMItem {
	return e.byKit[kitID]
}

// Explode converts a kit quantity into per-component quantities.
// Returns false when the kit has no BOM.
func (e *Explosion) Explode(kitID string, qty int) (map[string]decimal.Decimal, bool) {
	components := e.byKit[kitID]
	if len(components) == 0 {
		return nil, false
	}

	out := make(map[string]decimal.Decimal, len(components))
	q := decimal.NewFromInt(int64(qty))
	for _, c := range components {
		out[c.ProductID] = out[c.ProductID].Add(q.Mul(c.Multiplier))
	}
	return out, true
}
