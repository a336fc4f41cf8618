package services

import (
	"context"
	"fmt"

	"github.com/zamzamtravels/erp_backend/internal/apperrors"
	"github.com/zamzamtravels/erp_backend/internal/core/domain"
	portsrepo "github.com/zamzamtravels/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/zamzamtravels/erp_backend/internal/core/ports/services"
)

// partyService reads the vendor/agent registry. Party CRUD lives with the
// surrounding ERP; the ledger only looks counterparties up.
type partyService struct {
	partyRepo portsrepo.PartyRepository
}

// NewPartyService creates the party registry read service.
func NewPartyService(partyRepo portsrepo.PartyRepository) portssvc.PartySvcFacade {
	return &partyService{partyRepo: partyRepo}
}

var _ portssvc.PartySvcFacade = (*partyService)(nil)

// GetPartyByID fetches one registry entry.
func (s *partyService) GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	return s.partyRepo.FindPartyByID(ctx, partyID)
}

// ListParties returns a page of registry entries, optionally restricted to
// one counterparty kind.
func (s *partyService) ListParties(ctx context.Context, kind string, limit, offset int) ([]domain.Party, error) {
	partyKind := domain.PartyKind(kind)
	switch partyKind {
	case "", domain.PartyVendor, domain.PartyAgent:
	default:
		return nil, fmt.Errorf("%w: unknown party kind %q", apperrors.ErrValidation, kind)
	}
	return s.partyRepo.ListParties(ctx, partyKind, limit, offset)
}
