package dispatch

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/oms/backend/internal/domain/bom"
	"github.com/oms/backend/internal/domain/order"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SummaryItem is the per-component pick total across all platforms
type SummaryItem struct {
	ProductID   string
	ProductName string
	Spec        *string
	TotalQty    decimal.Decimal
	StockQty    *decimal.Decimal
}

// PlatformItem is the per-component pick total for one platform
type PlatformItem struct {
	ProductID   string
	ProductName string
	Platform    string
	TotalQty    decimal.Decimal
	StockQty    *decimal.Decimal
}

// Summary is the dispatch report for one date range
type Summary struct {
	Items              []SummaryItem
	ByPlatform         []PlatformItem
	UniqueDestinations int
	MissingBOMLines    int
}

// Service aggregates finalized order lines into per-component pick
// quantities for the picking/shipping report. It reads the same order
// ledger the gift engine writes: generated gift lines carry a
// resolvable kit id and flow through here like any vendor line.
type Service struct {
	orders   order.OrderLineRepository
	boms     bom.KitBOMRepository
	products bom.ProductRepository
	logger   *zap.Logger
}

// NewService creates a dispatch Service
func NewService(orders order.OrderLineRepository, boms bom.KitBOMRepository, products bom.ProductRepository, logger *zap.Logger) *Service {
	return &Service{
		orders:   orders,
		boms:     boms,
		products: products,
		logger:   logger,
	}
}

// Summarize explodes every dispatchable line in [from, to] through the
// kit BOM table and aggregates component quantities overall and per
// platform. Lines whose kit has no BOM are counted, not dropped
// silently.
func (s *Service) Summarize(ctx context.Context, from, to time.Time) (*Summary, error) {
	lines, err := s.orders.FindDispatchable(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading dispatchable orders: %w", err)
	}

	bomItems, err := s.boms.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading kit BOMs: %w", err)
	}
	explosion := bom.NewExplosion(bomItems)

	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading product master: %w", err)
	}
	productByID := make(map[string]bom.Product, len(products))
	for _, p := range products {
		productByID[p.ProductID] = p
	}

	byProduct := make(map[string]decimal.Decimal)
	byPlatform := make(map[string]map[string]decimal.Decimal)
	destinations := make(map[string]bool)
	summary := &Summary{}

	for i, line := range lines {
		if line.MatchedKitID == nil || *line.MatchedKitID == "" {
			continue
		}

		components, ok := explosion.Explode(*line.MatchedKitID, line.Qty)
		if !ok {
			summary.MissingBOMLines++
			continue
		}

		destKey := line.ReceiverName + "|" + line.ReceiverAddr + "|" + line.ReceiverPhone
		if len(destKey) > 2 {
			destinations[destKey] = true
		} else {
			// Contactless line still occupies its own parcel
			destinations[fmt.Sprintf("line-%d", i)] = true
		}

		platform := line.PlatformName
		if platform == "" {
			platform = "Unknown"
		}
		if byPlatform[platform] == nil {
			byPlatform[platform] = make(map[string]decimal.Decimal)
		}

		for productID, qty := range components {
			byProduct[productID] = byProduct[productID].Add(qty)
			byPlatform[platform][productID] = byPlatform[platform][productID].Add(qty)
		}
	}

	for productID, qty := range byProduct {
		p := productByID[productID]
		name := p.Name
		if name == "" {
			name = "Unknown"
		}
		summary.Items = append(summary.Items, SummaryItem{
			ProductID:   productID,
			ProductName: name,
			Spec:        p.Spec,
			TotalQty:    qty,
			StockQty:    p.BalQty,
		})
	}
	sort.Slice(summary.Items, func(i, j int) bool {
		return summary.Items[i].ProductName < summary.Items[j].ProductName
	})

	for platform, totals := range byPlatform {
		for productID, qty := range totals {
			p := productByID[productID]
			name := p.Name
			if name == "" {
				name = "Unknown"
			}
			summary.ByPlatform = append(summary.ByPlatform, PlatformItem{
				ProductID:   productID,
				ProductName: name,
				Platform:    platform,
				TotalQty:    qty,
				StockQty:    p.BalQty,
			})
		}
	}
	sort.Slice(summary.ByPlatform, func(i, j int) bool {
		if summary.ByPlatform[i].Platform != summary.ByPlatform[j].Platform {
			return summary.ByPlatform[i].Platform < summary.ByPlatform[j].Platform
		}
		return summary.ByPlatform[i].ProductName < summary.ByPlatform[j].ProductName
	})

	summary.UniqueDestinations = len(destinations)

	s.logger.Info("dispatch summary built",
		zap.Int("order_lines", len(lines)),
		zap.Int("components", len(summary.Items)),
		zap.Int("unique_destinations", summary.UniqueDestinations),
		zap.Int("missing_bom_lines", summary.MissingBOMLines),
	)
	return summary, nil
}
