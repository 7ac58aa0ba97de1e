package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/microlend_ledger/internal/apperrors"
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/microlend_ledger/internal/core/ports/services"
	"github.com/SscSPs/microlend_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const refinanceNote = "Refinanced from previous loan."

// loanService implements the LoanSvcFacade interface
type loanService struct {
	BaseService
	loanRepo   portsrepo.LoanRepositoryFacade
	ledgerRepo portsrepo.LedgerWriter
}

// NewLoanService creates a new loan service.
func NewLoanService(loanRepo portsrepo.LoanRepositoryFacade, ledgerRepo portsrepo.LedgerWriter, auditRepo portsrepo.AuditWriter, options ...ServiceOption) portssvc.LoanSvcFacade {
	return &loanService{
		BaseService: newBaseService(auditRepo, options),
		loanRepo:    loanRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

func validateFees(serviceFee, deliveryCharge decimal.Decimal) error {
	if serviceFee.IsNegative() {
		return apperrors.Validationf("service fee cannot be negative")
	}
	if deliveryCharge.IsNegative() {
		return apperrors.Validationf("delivery charge cannot be negative")
	}
	return nil
}

func validatePrincipalAndTerm(principal decimal.Decimal, term int) error {
	if !principal.IsPositive() {
		return apperrors.Validationf("principal must be positive, got %s", principal.String())
	}
	if term <= 0 {
		return apperrors.Validationf("%v", domain.ErrInvalidTerm)
	}
	return nil
}

// feeEntries books service and delivery fees as immediate income.
func (s *loanService) feeEntries(loan domain.Loan, actor string, label string) []domain.Transaction {
	var entries []domain.Transaction
	if loan.ServiceFee.IsPositive() {
		entries = append(entries, s.NewEntry(domain.Collection, fmt.Sprintf("Service Fee%s: %s", label, loan.Name),
			loan.ServiceFee, actor, loan.Date, domain.CategoryFee, loan.LoanID))
	}
	if loan.DeliveryCharge.IsPositive() {
		entries = append(entries, s.NewEntry(domain.Collection, fmt.Sprintf("Delivery Charge%s: %s", label, loan.Name),
			loan.DeliveryCharge, actor, loan.Date, domain.CategoryFee, loan.LoanID))
	}
	return entries
}

func (s *loanService) OriginateLoan(ctx context.Context, req dto.OriginateLoanRequest, actor string) (*domain.Loan, error) {
	logger := s.GetLogger(ctx).With(slog.String("actor", actor))

	name := strings.TrimSpace(req.Name)
	area := strings.TrimSpace(req.Area)
	if name == "" {
		return nil, apperrors.Validationf("borrower name is required")
	}
	if area == "" {
		return nil, apperrors.Validationf("area is required")
	}
	if err := validatePrincipalAndTerm(req.Principal, req.Term); err != nil {
		return nil, err
	}
	if err := validateFees(req.ServiceFee, req.DeliveryCharge); err != nil {
		return nil, err
	}
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	originDate, err := dateOrDefault(req.Date, s.Now())
	if err != nil {
		return nil, err
	}

	terms, err := domain.ComputeTerms(req.Principal, req.Term)
	if err != nil {
		return nil, apperrors.Validationf("%v", err)
	}

	collateral := strings.TrimSpace(req.Collateral)
	if collateral == "" {
		collateral = domain.DefaultCollateral
	}

	now := s.Now()
	loan := domain.Loan{
		LoanID:         uuid.NewString(),
		Name:           name,
		Area:           area,
		Address:        req.Address,
		CellNumber:     req.CellNumber,
		Principal:      req.Principal,
		Term:           req.Term,
		InterestRate:   terms.Rate,
		Total:          terms.Total,
		Daily:          terms.Daily,
		Balance:        terms.Total,
		Status:         domain.LoanActive,
		ServiceFee:     req.ServiceFee,
		DeliveryCharge: req.DeliveryCharge,
		Collateral:     collateral,
		Notes:          req.Notes,
		Date:           originDate,
		AuditFields:    domain.NewAuditFields(actor, now),
	}

	if err := s.loanRepo.SaveLoan(ctx, loan); err != nil {
		logger.Error("Failed to save loan in repository", slog.String("error", err.Error()), slog.String("loan_id", loan.LoanID))
		return nil, fmt.Errorf("failed to save loan: %w", err)
	}

	entries := []domain.Transaction{
		s.NewEntry(domain.Disbursement, "Loan: "+loan.Name, loan.Principal, actor, loan.Date, "", loan.LoanID),
	}
	entries = append(entries, s.feeEntries(loan, actor, "")...)
	if err := s.AppendEntries(ctx, s.ledgerRepo, entries...); err != nil {
		return nil, err
	}

	if err := s.RecordAudit(ctx, actor, domain.AuditCreate, "New Loan Created: "+loan.Name); err != nil {
		return nil, err
	}

	logger.Info("Loan originated",
		slog.String("loan_id", loan.LoanID),
		slog.String("principal", loan.Principal.String()),
		slog.Int("term", loan.Term))
	return &loan, nil
}

func (s *loanService) ApplyPayment(ctx context.Context, loanID string, req dto.ApplyPaymentRequest, actor string) (*domain.PaymentResult, error) {
	logger := s.GetLogger(ctx).With(slog.String("loan_id", loanID), slog.String("actor", actor))

	if !req.Amount.IsPositive() {
		return nil, apperrors.Validationf("payment amount must be positive, got %s", req.Amount.String())
	}
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	day, err := dateOrDefault(req.Date, s.Now())
	if err != nil {
		return nil, err
	}

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find loan for payment", slog.String("error", err.Error()))
		}
		return nil, err
	}

	applied := loan.ApplyPayment(req.Amount)
	loan.Touch(actor, s.Now())
	if err := s.loanRepo.UpdateLoan(ctx, *loan); err != nil {
		logger.Error("Failed to update loan balance", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update loan: %w", err)
	}

	// The ledger records the requested amount even when the balance absorbed less.
	entry := s.NewEntry(domain.Collection, "Payment: "+loan.Name, req.Amount, actor, day, "", loan.LoanID)
	if err := s.AppendEntries(ctx, s.ledgerRepo, entry); err != nil {
		return nil, err
	}

	if applied.LessThan(req.Amount) {
		logger.Warn("Payment exceeded outstanding balance",
			slog.String("requested", req.Amount.String()),
			slog.String("applied", applied.String()))
	}
	logger.Info("Payment applied", slog.String("balance", loan.Balance.String()), slog.String("status", string(loan.Status)))

	return &domain.PaymentResult{
		Loan:        *loan,
		Applied:     applied,
		Recorded:    req.Amount,
		Transaction: entry,
	}, nil
}

func (s *loanService) RefinanceLoan(ctx context.Context, loanID string, req dto.RefinanceLoanRequest, actor string) (*domain.RefinanceResult, error) {
	logger := s.GetLogger(ctx).With(slog.String("loan_id", loanID), slog.String("actor", actor))

	if err := validatePrincipalAndTerm(req.Principal, req.Term); err != nil {
		return nil, err
	}
	if err := validateFees(req.ServiceFee, req.DeliveryCharge); err != nil {
		return nil, err
	}
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	old, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find loan for refinance", slog.String("error", err.Error()))
		}
		return nil, err
	}

	terms, err := domain.ComputeTerms(req.Principal, req.Term)
	if err != nil {
		return nil, apperrors.Validationf("%v", err)
	}

	now := s.Now()
	today := s.Today()
	settled := old.Balance

	old.Close()
	old.Touch(actor, now)
	if err := s.loanRepo.UpdateLoan(ctx, *old); err != nil {
		logger.Error("Failed to close refinanced loan", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to close loan: %w", err)
	}

	successor := domain.Loan{
		LoanID:         uuid.NewString(),
		Name:           old.Name,
		Area:           old.Area,
		Address:        old.Address,
		CellNumber:     old.CellNumber,
		Principal:      req.Principal,
		Term:           req.Term,
		InterestRate:   terms.Rate,
		Total:          terms.Total,
		Daily:          terms.Daily,
		Balance:        terms.Total,
		Status:         domain.LoanActive,
		ServiceFee:     req.ServiceFee,
		DeliveryCharge: req.DeliveryCharge,
		Collateral:     old.Collateral,
		Notes:          refinanceNote,
		Date:           today,
		RefinancedFrom: old.LoanID,
		AuditFields:    domain.NewAuditFields(actor, now),
	}
	if err := s.loanRepo.SaveLoan(ctx, successor); err != nil {
		logger.Error("Failed to save successor loan", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save refinanced loan: %w", err)
	}

	entries := []domain.Transaction{
		s.NewEntry(domain.Collection, "Refinance Payment: "+old.Name, settled, actor, today, domain.CategoryRefinance, old.LoanID),
		s.NewEntry(domain.Disbursement, "Refinance Loan: "+successor.Name, successor.Principal, actor, today, domain.CategoryRefinance, successor.LoanID),
	}
	entries = append(entries, s.feeEntries(successor, actor, " (Ref)")...)
	if err := s.AppendEntries(ctx, s.ledgerRepo, entries...); err != nil {
		return nil, err
	}

	if err := s.RecordAudit(ctx, actor, domain.AuditUpdate, "Loan Refinanced: "+old.Name); err != nil {
		return nil, err
	}

	net := successor.NetProceeds().Sub(settled)
	result := &domain.RefinanceResult{
		Closed:         *old,
		Opened:         successor,
		SettledBalance: settled,
		NetProceeds:    net,
		RequiresTopUp:  net.IsNegative(),
	}
	if req.Principal.LessThan(settled) {
		logger.Warn("Refinance principal is below the settled balance",
			slog.String("principal", req.Principal.String()),
			slog.String("settled", settled.String()))
	}
	logger.Info("Loan refinanced", slog.String("new_loan_id", successor.LoanID), slog.String("net_proceeds", net.String()))
	return result, nil
}

func (s *loanService) DeleteLoan(ctx context.Context, loanID string, actor string) error {
	logger := s.GetLogger(ctx).With(slog.String("loan_id", loanID), slog.String("actor", actor))

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return err
	}
	if err := s.loanRepo.DeleteLoan(ctx, loanID); err != nil {
		logger.Error("Failed to delete loan", slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete loan: %w", err)
	}
	if err := s.RecordAudit(ctx, actor, domain.AuditDelete, "Loan Deleted: "+loan.Name); err != nil {
		return err
	}
	logger.Info("Loan deleted")
	return nil
}

func (s *loanService) GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find loan by ID", slog.String("loan_id", loanID))
		}
		return nil, err
	}
	return loan, nil
}

func (s *loanService) ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	loans, err := s.loanRepo.ListLoans(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans")
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, nil
}
