package firestore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
	"google.golang.org/api/iterator"
)

type bulkDoc struct {
	id    string
	value any
}

// bulkCreate writes docs in order with ascending sequence numbers.
func (s *Store) bulkCreate(ctx context.Context, collection string, docs []bulkDoc) error {
	if len(docs) == 0 {
		return nil
	}
	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(docs))
	for _, d := range docs {
		data, err := toDoc(d.value)
		if err != nil {
			bw.End()
			return err
		}
		data[seqField] = s.nextSeq()
		job, err := bw.Create(s.client.Collection(collection).Doc(d.id), data)
		if err != nil {
			bw.End()
			return storeError(err, "failed to queue "+collection+" document")
		}
		jobs = append(jobs, job)
	}
	bw.End()
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return storeError(err, "failed to write "+collection+" document")
		}
	}
	return nil
}

// clear deletes every document of a collection.
func (s *Store) clear(ctx context.Context, collection string) error {
	bw := s.client.BulkWriter(ctx)
	var jobs []*firestore.BulkWriterJob
	iter := s.client.Collection(collection).DocumentRefs(ctx)
	for {
		ref, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			bw.End()
			return storeError(err, "failed to list "+collection)
		}
		job, err := bw.Delete(ref)
		if err != nil {
			bw.End()
			return storeError(err, "failed to queue delete in "+collection)
		}
		jobs = append(jobs, job)
	}
	bw.End()
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return storeError(err, "failed to clear "+collection)
		}
	}
	return nil
}

type snapshotRepository struct{ s *Store }

var _ portsrepo.SnapshotRepository = (*snapshotRepository)(nil)

func (r *snapshotRepository) ExportSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	var (
		snap domain.Snapshot
		err  error
	)
	if snap.Collectors, err = list[domain.Collector](ctx, r.s.ordered(CollectorsCollection), nil); err != nil {
		return nil, err
	}
	if snap.Loans, err = list[domain.Loan](ctx, r.s.ordered(LoansCollection), nil); err != nil {
		return nil, err
	}
	if snap.Transactions, err = list[domain.Transaction](ctx, r.s.ordered(LedgerCollection), nil); err != nil {
		return nil, err
	}
	if snap.Attendance, err = list[domain.Attendance](ctx, r.s.ordered(AttendanceCollection), nil); err != nil {
		return nil, err
	}
	if snap.PayrollRecords, err = list[domain.PayrollRecord](ctx, r.s.ordered(PayrollCollection), nil); err != nil {
		return nil, err
	}
	if snap.Investors, err = list[domain.Investor](ctx, r.s.ordered(InvestorsCollection), nil); err != nil {
		return nil, err
	}
	if snap.Tasks, err = list[domain.Task](ctx, r.s.ordered(TasksCollection), nil); err != nil {
		return nil, err
	}
	if snap.Assets, err = list[domain.Asset](ctx, r.s.ordered(AssetsCollection), nil); err != nil {
		return nil, err
	}
	if snap.AuditLogs, err = list[domain.AuditLog](ctx, r.s.ordered(AuditCollection), nil); err != nil {
		return nil, err
	}
	snap.Normalize()
	return &snap, nil
}

// ImportSnapshot clears every collection and writes the snapshot back. It is
// not atomic: a failure part way leaves a partially restored state.
func (r *snapshotRepository) ImportSnapshot(ctx context.Context, snap domain.Snapshot) error {
	for _, collection := range allCollections {
		if err := r.s.clear(ctx, collection); err != nil {
			return err
		}
	}

	writes := []struct {
		collection string
		docs       []bulkDoc
	}{
		{CollectorsCollection, docsOf(snap.Collectors, func(c domain.Collector) string { return c.CollectorID })},
		{LoansCollection, docsOf(snap.Loans, func(l domain.Loan) string { return l.LoanID })},
		{LedgerCollection, docsOf(snap.Transactions, func(t domain.Transaction) string { return t.TransactionID })},
		{AttendanceCollection, docsOf(snap.Attendance, attendanceKey)},
		{PayrollCollection, docsOf(snap.PayrollRecords, func(p domain.PayrollRecord) string { return p.RecordID })},
		{InvestorsCollection, docsOf(snap.Investors, func(i domain.Investor) string { return i.InvestorID })},
		{TasksCollection, docsOf(snap.Tasks, func(t domain.Task) string { return t.TaskID })},
		{AssetsCollection, docsOf(snap.Assets, func(a domain.Asset) string { return a.AssetID })},
		{AuditCollection, docsOf(snap.AuditLogs, func(a domain.AuditLog) string { return a.AuditID })},
	}
	for _, w := range writes {
		if err := r.s.bulkCreate(ctx, w.collection, w.docs); err != nil {
			return fmt.Errorf("failed to restore %s: %w", w.collection, err)
		}
	}
	return nil
}

func docsOf[T any](items []T, id func(T) string) []bulkDoc {
	docs := make([]bulkDoc, 0, len(items))
	for _, item := range items {
		docs = append(docs, bulkDoc{id: id(item), value: item})
	}
	return docs
}
