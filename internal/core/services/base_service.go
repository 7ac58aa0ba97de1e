package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/microlend_ledger/internal/apperrors"
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/microlend_ledger/internal/middleware"
	"github.com/SscSPs/microlend_ledger/internal/utils/dates"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BaseService provides common functionality for all services
type BaseService struct {
	AuditWriter portsrepo.AuditWriter
	Clock       func() time.Time
}

// ServiceOption is a functional option applied to the shared BaseService of any service.
type ServiceOption func(*BaseService)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

func newBaseService(audit portsrepo.AuditWriter, options []ServiceOption) BaseService {
	base := BaseService{AuditWriter: audit, Clock: time.Now}
	for _, option := range options {
		option(&base)
	}
	return base
}

// Now returns the current time from the configured clock.
func (s *BaseService) Now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

// Today returns the current calendar date.
func (s *BaseService) Today() time.Time {
	return dates.Truncate(s.Now())
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// RecordAudit appends an entry to the audit trail.
func (s *BaseService) RecordAudit(ctx context.Context, actor string, action domain.AuditAction, details string) error {
	if s.AuditWriter == nil {
		return nil
	}
	entry := domain.AuditLog{
		AuditID:   uuid.NewString(),
		Timestamp: s.Now(),
		User:      actor,
		Action:    action,
		Details:   details,
	}
	if err := s.AuditWriter.AppendAuditLog(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to write audit log", slog.String("action", string(action)))
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

// NewEntry builds a ledger entry; the sign of amount is taken from the type.
func (s *BaseService) NewEntry(txType domain.TransactionType, desc string, amount decimal.Decimal, actor string, day time.Time, category string, loanID string) domain.Transaction {
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		Timestamp:     s.Now(),
		SimpleDate:    dates.Truncate(day),
		Type:          txType,
		Description:   desc,
		Amount:        txType.Signed(amount),
		User:          actor,
		Category:      category,
		LoanID:        loanID,
	}
}

// AppendEntries writes entries in order and stops at the first failure.
func (s *BaseService) AppendEntries(ctx context.Context, ledger portsrepo.LedgerWriter, entries ...domain.Transaction) error {
	for _, entry := range entries {
		if err := ledger.AppendEntry(ctx, entry); err != nil {
			s.LogError(ctx, err, "Failed to append ledger entry",
				slog.String("transaction_id", entry.TransactionID),
				slog.String("type", string(entry.Type)))
			return fmt.Errorf("failed to append ledger entry %q: %w", entry.Description, err)
		}
	}
	return nil
}

// dateOrDefault parses an optional YYYY-MM-DD value, falling back when empty.
func dateOrDefault(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return dates.Truncate(fallback), nil
	}
	t, err := dates.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return t, nil
}

// optionalDate parses an optional YYYY-MM-DD value into a pointer.
func optionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := dates.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return &t, nil
}

func requireActor(actor string) error {
	if actor == "" {
		return apperrors.Validationf("actor is required")
	}
	return nil
}
