package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/microlend_ledger/internal/apperrors"
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/microlend_ledger/internal/core/ports/services"
	"github.com/SscSPs/microlend_ledger/internal/dto"
	"github.com/SscSPs/microlend_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const (
	defaultLedgerPageSize = 50
	capitalDescription    = "Internal Capital Injection"
)

// ledgerService implements the LedgerSvcFacade interface
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, auditRepo portsrepo.AuditWriter, options ...ServiceOption) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: newBaseService(auditRepo, options),
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) AddEntry(ctx context.Context, req dto.AddLedgerEntryRequest, actor string) (*domain.Transaction, error) {
	if !req.Type.IsValid() {
		return nil, apperrors.Validationf("unknown transaction type %q", req.Type)
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperrors.Validationf("description is required")
	}
	if req.Amount.IsZero() {
		return nil, apperrors.Validationf("amount must be non-zero")
	}
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	day, err := dateOrDefault(req.Date, s.Now())
	if err != nil {
		return nil, err
	}

	entry := s.NewEntry(req.Type, strings.TrimSpace(req.Description), req.Amount, actor, day, req.Category, req.LoanID)
	if err := s.AppendEntries(ctx, s.ledgerRepo, entry); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Ledger entry added",
		slog.String("transaction_id", entry.TransactionID),
		slog.String("type", string(entry.Type)),
		slog.String("amount", entry.Amount.String()))
	return &entry, nil
}

func (s *ledgerService) AddCapital(ctx context.Context, amount decimal.Decimal, description string, actor string) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, apperrors.Validationf("capital amount must be positive, got %s", amount.String())
	}
	if strings.TrimSpace(description) == "" {
		description = capitalDescription
	}
	entry, err := s.AddEntry(ctx, dto.AddLedgerEntryRequest{
		Type:        domain.Capital,
		Description: description,
		Amount:      amount,
	}, actor)
	if err != nil {
		return nil, err
	}
	if err := s.RecordAudit(ctx, actor, domain.AuditUpdate, "Injected Capital: "+amount.StringFixed(2)); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ledgerService) ListEntries(ctx context.Context, params dto.ListLedgerParams) (*dto.ListLedgerResponse, error) {
	filter, err := ledgerFilterFromParams(params)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.ListEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries")
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	// Newest first: by calendar date, then write time, then id.
	sort.SliceStable(entries, func(i, j int) bool {
		return cursorOf(entries[i]).Before(cursorOf(entries[j]))
	})

	if params.NextToken != nil && *params.NextToken != "" {
		after, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		start := sort.Search(len(entries), func(i int) bool {
			return after.Before(cursorOf(entries[i]))
		})
		entries = entries[start:]
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultLedgerPageSize
	}

	resp := &dto.ListLedgerResponse{Entries: entries}
	if len(entries) > limit {
		resp.Entries = entries[:limit]
		last := resp.Entries[limit-1]
		token := pagination.EncodeToken(cursorOf(last))
		resp.NextToken = &token
	}
	return resp, nil
}

func cursorOf(e domain.Transaction) pagination.Cursor {
	return pagination.Cursor{EntryDate: e.SimpleDate, WrittenAt: e.Timestamp, ID: e.TransactionID}
}

func ledgerFilterFromParams(params dto.ListLedgerParams) (domain.LedgerFilter, error) {
	filter := domain.LedgerFilter{
		Type:     domain.TransactionType(params.Type),
		User:     params.User,
		LoanID:   params.LoanID,
		Category: params.Category,
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		return filter, apperrors.Validationf("unknown transaction type %q", params.Type)
	}
	if params.From != "" {
		from, err := dateOrDefault(params.From, time.Time{})
		if err != nil {
			return filter, err
		}
		filter.From = from
	}
	if params.To != "" {
		to, err := dateOrDefault(params.To, time.Time{})
		if err != nil {
			return filter, err
		}
		filter.To = to
	}
	return filter, nil
}
