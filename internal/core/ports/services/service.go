package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Loan       LoanSvcFacade
	Ledger     LedgerSvcFacade
	Collector  CollectorSvcFacade
	Attendance AttendanceSvcFacade
	Payroll    PayrollSvcFacade
	Investor   InvestorSvcFacade
	Task       TaskSvcFacade
	Asset      AssetSvcFacade
	Audit      AuditSvcFacade
	Reporting  ReportingSvcFacade
	Snapshot   SnapshotSvcFacade
}
