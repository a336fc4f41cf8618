package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zamzamtravels/erp_backend/internal/core/domain"
	"github.com/zamzamtravels/erp_backend/internal/utils/pagination"
)

// StatementParams are the query parameters of the account statement endpoint.
type StatementParams struct {
	DateFrom *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo   *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Kind     string     `form:"kind"`
	pagination.Params
}

// SummaryResponse mirrors domain.ActivitySummary plus the folded net change.
type SummaryResponse struct {
	TotalCredit      decimal.Decimal `json:"totalCredit"`
	TotalDebit       decimal.Decimal `json:"totalDebit"`
	TotalTransferIn  decimal.Decimal `json:"totalTransferIn"`
	TotalTransferOut decimal.Decimal `json:"totalTransferOut"`
	TotalCharges     decimal.Decimal `json:"totalCharges"`
	TotalAdjustment  decimal.Decimal `json:"totalAdjustment"`
	NetChange        decimal.Decimal `json:"netChange"`
}

// StatementResponse bundles the page of entries with the summary computed
// over the identical filter.
type StatementResponse struct {
	AccountID  string           `json:"accountID"`
	Balance    decimal.Decimal  `json:"balance"`
	Items      []StatementEntry `json:"items"`
	Pagination pagination.Meta  `json:"pagination"`
	Summary    SummaryResponse  `json:"summary"`
}

// ToSummaryResponse converts the domain summary.
func ToSummaryResponse(s *domain.ActivitySummary) SummaryResponse {
	return SummaryResponse{
		TotalCredit:      s.TotalCredit,
		TotalDebit:       s.TotalDebit,
		TotalTransferIn:  s.TotalTransferIn,
		TotalTransferOut: s.TotalTransferOut,
		TotalCharges:     s.TotalCharges,
		TotalAdjustment:  s.TotalAdjustment,
		NetChange:        s.NetChange(),
	}
}
