package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zamzamtravels/erp_backend/internal/apperrors"
	"github.com/zamzamtravels/erp_backend/internal/core/domain"
	portsrepo "github.com/zamzamtravels/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/zamzamtravels/erp_backend/internal/core/ports/services"
	"github.com/zamzamtravels/erp_backend/internal/middleware"
)

// reserveService derives currency positions with the moving weighted-average
// cost method. Events are folded in (date, createdAt, id) ascending order so
// repeated queries over the same data always agree.
type reserveService struct {
	txnRepo portsrepo.TransactionRepository
}

// NewReserveService creates the currency-reserve valuation service.
func NewReserveService(txnRepo portsrepo.TransactionRepository) portssvc.ReserveSvcFacade {
	return &reserveService{txnRepo: txnRepo}
}

var _ portssvc.ReserveSvcFacade = (*reserveService)(nil)

// Positions derives every held currency's position, sorted by currency code.
func (s *reserveService) Positions(ctx context.Context) ([]domain.CurrencyPosition, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	events, err := s.txnRepo.ListReserveEvents(ctx, "")
	if err != nil {
		logger.Error("Failed to list reserve events", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list reserve events: %w", err)
	}

	byCurrency, _ := foldReserveEvents(events)

	codes := make([]string, 0, len(byCurrency))
	for code := range byCurrency {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	positions := make([]domain.CurrencyPosition, len(codes))
	for i, code := range codes {
		positions[i] = byCurrency[code]
	}
	return positions, nil
}

// Position derives one currency's position. A currency with no events is a
// not-found, not an empty position.
func (s *reserveService) Position(ctx context.Context, currencyCode string) (*domain.CurrencyPosition, error) {
	events, err := s.txnRepo.ListReserveEvents(ctx, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list reserve events for %s: %w", currencyCode, err)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: no reserve events for currency %s", apperrors.ErrNotFound, currencyCode)
	}

	byCurrency, _ := foldReserveEvents(events)
	position := byCurrency[currencyCode]
	return &position, nil
}

// RealizedProfit folds the complete exchange ledger (the average cost at each
// sale depends on everything before it) and then windows the recognized sales.
func (s *reserveService) RealizedProfit(ctx context.Context, from, to *time.Time) (decimal.Decimal, []domain.RealizedSale, error) {
	if err := validateDateRange(from, to); err != nil {
		return decimal.Zero, nil, err
	}

	events, err := s.txnRepo.ListReserveEvents(ctx, "")
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("failed to list reserve events: %w", err)
	}

	_, sales := foldReserveEvents(events)

	total := decimal.Zero
	windowed := make([]domain.RealizedSale, 0, len(sales))
	for _, sale := range sales {
		if from != nil && sale.TxnDate.Before(*from) {
			continue
		}
		if to != nil && sale.TxnDate.After(*to) {
			continue
		}
		windowed = append(windowed, sale)
		total = total.Add(sale.Profit)
	}
	return total, windowed, nil
}

type positionState struct {
	quantity decimal.Decimal
	cost     decimal.Decimal
	lastBuy  decimal.Decimal
	lastSell decimal.Decimal
}

func (st positionState) averageCost() decimal.Decimal {
	if st.quantity.IsPositive() {
		return st.cost.Div(st.quantity)
	}
	return decimal.Zero
}

// foldReserveEvents replays the exchange ledger chronologically.
//
// Buy:    quantity += q, cost += amount, average recomputed from what is
//         currently held (not lifetime purchases, which would let the divisor
//         grow while sells shrink the holding).
// Sell:   removes q x averageCost of basis; profit = q x rate - removed.
// Adjust: stock-count correction at cost: quantity and basis move together by
//         q and q x averageCost, so the average survives the correction and
//         no profit is recognized.
func foldReserveEvents(events []domain.Transaction) (map[string]domain.CurrencyPosition, []domain.RealizedSale) {
	states := make(map[string]*positionState)
	var sales []domain.RealizedSale

	for _, ev := range events {
		st, ok := states[ev.CurrencyCode]
		if !ok {
			st = &positionState{
				quantity: decimal.Zero,
				cost:     decimal.Zero,
				lastBuy:  decimal.Zero,
				lastSell: decimal.Zero,
			}
			states[ev.CurrencyCode] = st
		}

		switch ev.ReserveAction {
		case domain.ReserveBuy:
			st.quantity = st.quantity.Add(ev.Quantity)
			st.cost = st.cost.Add(ev.Amount)
			st.lastBuy = ev.ExchangeRate
		case domain.ReserveSell:
			removed := ev.Quantity.Mul(st.averageCost())
			st.cost = st.cost.Sub(removed)
			st.quantity = st.quantity.Sub(ev.Quantity)
			st.lastSell = ev.ExchangeRate
			sales = append(sales, domain.RealizedSale{
				TxnID:        ev.TxnID,
				CurrencyCode: ev.CurrencyCode,
				Quantity:     ev.Quantity,
				SellRate:     ev.ExchangeRate,
				CostRemoved:  removed,
				Profit:       ev.Quantity.Mul(ev.ExchangeRate).Sub(removed),
				TxnDate:      ev.TxnDate,
			})
		case domain.ReserveAdjust:
			delta := ev.Quantity.Mul(st.averageCost())
			if ev.Direction == domain.AdjustDecrease {
				st.quantity = st.quantity.Sub(ev.Quantity)
				st.cost = st.cost.Sub(delta)
			} else {
				st.quantity = st.quantity.Add(ev.Quantity)
				st.cost = st.cost.Add(delta)
			}
		}
	}

	positions := make(map[string]domain.CurrencyPosition, len(states))
	for code, st := range states {
		positions[code] = domain.CurrencyPosition{
			CurrencyCode:        code,
			QuantityOnHand:      st.quantity,
			CostBasisTotal:      st.cost,
			WeightedAverageCost: st.averageCost(),
			LastBuyRate:         st.lastBuy,
			LastSellRate:        st.lastSell,
		}
	}
	return positions, sales
}
