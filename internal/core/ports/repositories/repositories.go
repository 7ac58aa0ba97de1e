package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	LoanRepo       LoanRepositoryFacade
	LedgerRepo     LedgerRepositoryFacade
	CollectorRepo  CollectorRepositoryFacade
	AttendanceRepo AttendanceRepositoryFacade
	PayrollRepo    PayrollRepositoryFacade
	InvestorRepo   InvestorRepositoryFacade
	TaskRepo       TaskRepositoryFacade
	AssetRepo      AssetRepositoryFacade
	AuditRepo      AuditRepositoryFacade
	SnapshotRepo   SnapshotRepository
}

// Store is a persistence backend. Implementations are selected at startup
// and services only ever see the repositories it provides.
type Store interface {
	// Repositories returns the backend's repository set.
	Repositories() RepositoryProvider

	// Close releases connections or flushes pending state.
	Close() error
}
