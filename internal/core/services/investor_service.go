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

// investorService implements the InvestorSvcFacade interface
type investorService struct {
	BaseService
	investorRepo portsrepo.InvestorRepositoryFacade
	ledgerRepo   portsrepo.LedgerWriter
}

// NewInvestorService creates a new investor service.
func NewInvestorService(investorRepo portsrepo.InvestorRepositoryFacade, ledgerRepo portsrepo.LedgerWriter, auditRepo portsrepo.AuditWriter, options ...ServiceOption) portssvc.InvestorSvcFacade {
	return &investorService{
		BaseService:  newBaseService(auditRepo, options),
		investorRepo: investorRepo,
		ledgerRepo:   ledgerRepo,
	}
}

var _ portssvc.InvestorSvcFacade = (*investorService)(nil)

func (s *investorService) AddInvestor(ctx context.Context, req dto.AddInvestorRequest, actor string) (*domain.Investor, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validationf("investor name is required")
	}
	if !req.CapitalInvested.IsPositive() {
		return nil, apperrors.Validationf("invested capital must be positive")
	}
	if req.DividendRate.IsNegative() {
		return nil, apperrors.Validationf("dividend rate cannot be negative")
	}
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	joined, err := dateOrDefault(req.DateJoined, s.Now())
	if err != nil {
		return nil, err
	}

	investor := domain.Investor{
		InvestorID:      uuid.NewString(),
		Name:            name,
		CapitalInvested: req.CapitalInvested,
		DividendRate:    req.DividendRate,
		TotalPayouts:    decimal.Zero,
		DateJoined:      joined,
		AuditFields:     domain.NewAuditFields(actor, s.Now()),
	}
	if err := s.investorRepo.SaveInvestor(ctx, investor); err != nil {
		s.LogError(ctx, err, "Failed to save investor")
		return nil, fmt.Errorf("failed to save investor: %w", err)
	}

	entry := s.NewEntry(domain.Capital, "Investment: "+investor.Name, investor.CapitalInvested, actor, joined, "", "")
	if err := s.AppendEntries(ctx, s.ledgerRepo, entry); err != nil {
		return nil, err
	}
	if err := s.RecordAudit(ctx, actor, domain.AuditCreate, "New Investor Added: "+investor.Name); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Investor added", slog.String("investor_id", investor.InvestorID))
	return &investor, nil
}

func (s *investorService) PayDividend(ctx context.Context, investorID string, req dto.PayDividendRequest, actor string) (*domain.Investor, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	investor, err := s.investorRepo.FindInvestorByID(ctx, investorID)
	if err != nil {
		return nil, err
	}

	amount := investor.DefaultDividend()
	if req.Amount != nil {
		amount = *req.Amount
	}
	if !amount.IsPositive() {
		return nil, apperrors.Validationf("dividend amount must be positive, got %s", amount.String())
	}

	investor.TotalPayouts = investor.TotalPayouts.Add(amount)
	investor.Touch(actor, s.Now())
	if err := s.investorRepo.UpdateInvestor(ctx, *investor); err != nil {
		s.LogError(ctx, err, "Failed to update investor payouts", slog.String("investor_id", investorID))
		return nil, fmt.Errorf("failed to update investor: %w", err)
	}

	entry := s.NewEntry(domain.Dividend, "Payout: "+investor.Name, amount, actor, s.Today(), "", "")
	if err := s.AppendEntries(ctx, s.ledgerRepo, entry); err != nil {
		return nil, err
	}
	if err := s.RecordAudit(ctx, actor, domain.AuditUpdate, "Dividend Paid: "+investor.Name); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Dividend paid",
		slog.String("investor_id", investorID),
		slog.String("amount", amount.String()))
	return investor, nil
}

func (s *investorService) GetInvestorByID(ctx context.Context, investorID string) (*domain.Investor, error) {
	investor, err := s.investorRepo.FindInvestorByID(ctx, investorID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find investor", slog.String("investor_id", investorID))
		}
		return nil, err
	}
	return investor, nil
}

func (s *investorService) ListInvestors(ctx context.Context) ([]domain.Investor, error) {
	investors, err := s.investorRepo.ListInvestors(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list investors")
		return nil, fmt.Errorf("failed to list investors: %w", err)
	}
	return investors, nil
}
