package models

// User is the users table row shape.
type User struct {
	UserID       string
	Username     string
	Name         string
	PasswordHash string
	IsActive     bool
	AuditFields
}
