package repositories

// RepositoryProvider bundles every repository implementation so wiring at
// startup stays in one place.
type RepositoryProvider struct {
	TxnRepo     TransactionRepository
	AccountRepo AccountRepository
	PartyRepo   PartyRepository
	UserRepo    UserRepository
}
