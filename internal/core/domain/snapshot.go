package domain

// Snapshot is the whole persisted state, used for backup and restore.
type Snapshot struct {
	Collectors     []Collector     `json:"collectors"`
	Loans          []Loan          `json:"loans"`
	Transactions   []Transaction   `json:"transactions"`
	Attendance     []Attendance    `json:"attendance"`
	PayrollRecords []PayrollRecord `json:"payrollRecords"`
	Investors      []Investor      `json:"investors"`
	Tasks          []Task          `json:"tasks"`
	Assets         []Asset         `json:"assets"`
	AuditLogs      []AuditLog      `json:"auditLogs"`
}

// Normalize replaces missing collections with empty ones.
func (s *Snapshot) Normalize() {
	if s.Collectors == nil {
		s.Collectors = []Collector{}
	}
	if s.Loans == nil {
		s.Loans = []Loan{}
	}
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	if s.Attendance == nil {
		s.Attendance = []Attendance{}
	}
	if s.PayrollRecords == nil {
		s.PayrollRecords = []PayrollRecord{}
	}
	if s.Investors == nil {
		s.Investors = []Investor{}
	}
	if s.Tasks == nil {
		s.Tasks = []Task{}
	}
	if s.Assets == nil {
		s.Assets = []Asset{}
	}
	if s.AuditLogs == nil {
		s.AuditLogs = []AuditLog{}
	}
}
