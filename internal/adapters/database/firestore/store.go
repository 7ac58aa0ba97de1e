// Package firestore stores each entity type in its own Firestore collection,
// one document per entity keyed by its ID.
package firestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/SscSPs/microlend_ledger/internal/apperrors"
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Collection names.
const (
	CollectorsCollection = "collectors"
	LoansCollection      = "loans"
	LedgerCollection     = "ledger"
	AttendanceCollection = "attendance"
	PayrollCollection    = "payroll"
	InvestorsCollection  = "investors"
	TasksCollection      = "tasks"
	AssetsCollection     = "assets"
	AuditCollection      = "audit"
)

var allCollections = []string{
	CollectorsCollection, LoansCollection, LedgerCollection, AttendanceCollection, PayrollCollection,
	InvestorsCollection, TasksCollection, AssetsCollection, AuditCollection,
}

// seqField orders documents by write time; it is stripped on read.
const seqField = "_seq"

// Store is the Firestore backend.
type Store struct {
	client *firestore.Client
	seq    atomic.Int64
}

var _ portsrepo.Store = (*Store)(nil)

// NewStore wraps client and seeds an administrator when the collectors
// collection is empty.
func NewStore(ctx context.Context, client *firestore.Client) (*Store, error) {
	s := &Store{client: client}
	s.seq.Store(time.Now().UnixNano())

	existing, err := s.client.Collection(CollectorsCollection).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to check collectors: %w", err)
	}
	if len(existing) == 0 {
		now := time.Now()
		admin := domain.Collector{
			CollectorID: domain.DefaultAdminID,
			Name:        domain.DefaultAdminName,
			Area:        domain.DefaultAdminArea,
			Role:        domain.RoleAdmin,
			DailyRate:   decimal.Zero,
			MonthlyRate: decimal.Zero,
			Quota:       decimal.Zero,
			AuditFields: domain.NewAuditFields(domain.SystemActor, now),
		}
		if err := s.set(ctx, CollectorsCollection, admin.CollectorID, admin); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) Repositories() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LoanRepo:       &loanRepository{s},
		LedgerRepo:     &ledgerRepository{s},
		CollectorRepo:  &collectorRepository{s},
		AttendanceRepo: &attendanceRepository{s},
		PayrollRepo:    &payrollRepository{s},
		InvestorRepo:   &investorRepository{s},
		TaskRepo:       &taskRepository{s},
		AssetRepo:      &assetRepository{s},
		AuditRepo:      &auditRepository{s},
		SnapshotRepo:   &snapshotRepository{s},
	}
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) nextSeq() int64 {
	return s.seq.Add(1)
}

// toDoc converts an entity to document data through its JSON form, so
// decimals are stored as strings and field names match the JSON API.
func toDoc(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

func fromDoc[T any](doc *firestore.DocumentSnapshot) (T, error) {
	var v T
	data := doc.Data()
	delete(data, seqField)
	raw, err := json.Marshal(data)
	if err != nil {
		return v, fmt.Errorf("failed to decode document %s: %w", doc.Ref.ID, err)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("failed to decode document %s: %w", doc.Ref.ID, err)
	}
	return v, nil
}

func storeError(err error, op string) error {
	return apperrors.NewAppError(http.StatusInternalServerError, op, err)
}

func get[T any](ctx context.Context, s *Store, collection, id string) (*T, error) {
	doc, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperrors.NotFoundf("%s %s", collection, id)
		}
		return nil, storeError(err, "failed to read "+collection)
	}
	v, err := fromDoc[T](doc)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// list reads every document of q in order, keeping those keep accepts.
func list[T any](ctx context.Context, q firestore.Query, keep func(T) bool) ([]T, error) {
	out := []T{}
	iter := q.Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, storeError(err, "failed to query documents")
		}
		v, err := fromDoc[T](doc)
		if err != nil {
			return nil, err
		}
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *Store) ordered(collection string) firestore.Query {
	return s.client.Collection(collection).OrderBy(seqField, firestore.Asc)
}

// create fails with ErrDuplicate when the document already exists.
func (s *Store) create(ctx context.Context, collection, id string, v any) error {
	data, err := toDoc(v)
	if err != nil {
		return err
	}
	data[seqField] = s.nextSeq()
	if _, err := s.client.Collection(collection).Doc(id).Create(ctx, data); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("%w: %s %s", apperrors.ErrDuplicate, collection, id)
		}
		return storeError(err, "failed to create "+collection+" document")
	}
	return nil
}

// set writes the document whether or not it exists, keeping its original order.
func (s *Store) set(ctx context.Context, collection, id string, v any) error {
	ref := s.client.Collection(collection).Doc(id)
	seq := s.nextSeq()
	if doc, err := ref.Get(ctx); err == nil {
		if existing, ok := doc.Data()[seqField].(int64); ok {
			seq = existing
		}
	} else if status.Code(err) != codes.NotFound {
		return storeError(err, "failed to read "+collection)
	}
	data, err := toDoc(v)
	if err != nil {
		return err
	}
	data[seqField] = seq
	if _, err := ref.Set(ctx, data); err != nil {
		return storeError(err, "failed to write "+collection+" document")
	}
	return nil
}

// replace overwrites an existing document, failing with ErrNotFound otherwise.
func (s *Store) replace(ctx context.Context, collection, id string, v any) error {
	ref := s.client.Collection(collection).Doc(id)
	doc, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return apperrors.NotFoundf("%s %s", collection, id)
		}
		return storeError(err, "failed to read "+collection)
	}
	data, err := toDoc(v)
	if err != nil {
		return err
	}
	data[seqField] = doc.Data()[seqField]
	if _, err := ref.Set(ctx, data); err != nil {
		return storeError(err, "failed to update "+collection+" document")
	}
	return nil
}

func (s *Store) remove(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return apperrors.NotFoundf("%s %s", collection, id)
		}
		return storeError(err, "failed to delete "+collection+" document")
	}
	return nil
}
