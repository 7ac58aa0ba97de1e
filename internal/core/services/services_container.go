package services

import (
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/microlend_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, currencySymbol string, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Loan:       NewLoanService(repos.LoanRepo, repos.LedgerRepo, repos.AuditRepo, options...),
		Ledger:     NewLedgerService(repos.LedgerRepo, repos.AuditRepo, options...),
		Collector:  NewCollectorService(repos.CollectorRepo, repos.AuditRepo, options...),
		Attendance: NewAttendanceService(repos.AttendanceRepo, repos.CollectorRepo, options...),
		Payroll: NewPayrollService(
			repos.PayrollRepo,
			repos.CollectorRepo,
			repos.AttendanceRepo,
			repos.LedgerRepo,
			repos.AuditRepo,
			options...,
		),
		Investor:  NewInvestorService(repos.InvestorRepo, repos.LedgerRepo, repos.AuditRepo, options...),
		Task:      NewTaskService(repos.TaskRepo, options...),
		Asset:     NewAssetService(repos.AssetRepo, repos.AuditRepo, options...),
		Audit:     NewAuditService(repos.AuditRepo),
		Reporting: NewReportingService(repos.LoanRepo, repos.LedgerRepo, repos.CollectorRepo, currencySymbol, options...),
		Snapshot:  NewSnapshotService(repos.SnapshotRepo, repos.AuditRepo, options...),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.TaskSvcFacade  = (*taskService)(nil)
	_ portssvc.AssetSvcFacade = (*assetService)(nil)
	_ portssvc.AuditSvcFacade = (*auditService)(nil)
)
