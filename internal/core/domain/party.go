package domain

// PartyKind distinguishes the external counterparties the agency settles with.
type PartyKind string

const (
	PartyVendor PartyKind = "VENDOR"
	PartyAgent  PartyKind = "AGENT"
)

// Party is an external counterparty (vendor or agent). The ledger treats its
// ID as an opaque key; everything else is display metadata owned by the
// registry CRUD.
type Party struct {
	PartyID  string    `json:"partyID"`
	Kind     PartyKind `json:"kind"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone,omitempty"`
	Address  string    `json:"address,omitempty"`
	IsActive bool      `json:"isActive"`
	AuditFields
}
