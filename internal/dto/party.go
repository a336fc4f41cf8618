package dto

import (
	"github.com/zamzamtravels/erp_backend/internal/core/domain"
	"github.com/zamzamtravels/erp_backend/internal/utils/pagination"
)

// PartyResponse is the counterparty registry read shape.
type PartyResponse struct {
	PartyID  string `json:"partyID"`
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	IsActive bool   `json:"isActive"`
}

// ListPartiesResponse wraps the party list.
type ListPartiesResponse struct {
	Parties []PartyResponse `json:"parties"`
}

// ListPartiesParams carries the optional kind filter plus pagination.
type ListPartiesParams struct {
	Kind string `form:"kind"`
	pagination.Params
}

// ToPartyResponse converts a domain party.
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:  p.PartyID,
		Kind:     string(p.Kind),
		Name:     p.Name,
		Phone:    p.Phone,
		Address:  p.Address,
		IsActive: p.IsActive,
	}
}
