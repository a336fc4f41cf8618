package models

// Party is the parties table row shape.
type Party struct {
	PartyID  string
	Kind     string
	Name     string
	Phone    string
	Address  string
	IsActive bool
	AuditFields
}
