package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
)

type PgxInvestorRepository struct {
	BaseRepository
}

var _ portsrepo.InvestorRepositoryFacade = (*PgxInvestorRepository)(nil)

const investorColumns = `investor_id, name, capital_invested, dividend_rate, total_payouts, date_joined,
	created_at, created_by, last_updated_at, last_updated_by`

func scanInvestor(row scanner) (domain.Investor, error) {
	var i domain.Investor
	err := row.Scan(&i.InvestorID, &i.Name, &i.CapitalInvested, &i.DividendRate, &i.TotalPayouts, &i.DateJoined,
		&i.CreatedAt, &i.CreatedBy, &i.LastUpdatedAt, &i.LastUpdatedBy)
	return i, err
}

func insertInvestor(ctx context.Context, q querier, i domain.Investor) error {
	query := `INSERT INTO investors (` + investorColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	_, err := q.Exec(ctx, query, i.InvestorID, i.Name, i.CapitalInvested, i.DividendRate, i.TotalPayouts, i.DateJoined,
		i.CreatedAt, i.CreatedBy, i.LastUpdatedAt, i.LastUpdatedBy)
	if err != nil {
		return mapWriteError(err, "investor", i.InvestorID)
	}
	return nil
}

func (r *PgxInvestorRepository) FindInvestorByID(ctx context.Context, investorID string) (*domain.Investor, error) {
	inv, err := scanInvestor(r.Pool.QueryRow(ctx, `SELECT `+investorColumns+` FROM investors WHERE investor_id = $1;`, investorID))
	if err != nil {
		return nil, mapReadError(err, "investor", investorID)
	}
	return &inv, nil
}

func (r *PgxInvestorRepository) ListInvestors(ctx context.Context) ([]domain.Investor, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+investorColumns+` FROM investors ORDER BY date_joined, created_at;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query investors: %w", err)
	}
	defer rows.Close()

	investors := []domain.Investor{}
	for rows.Next() {
		inv, err := scanInvestor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investor row: %w", err)
		}
		investors = append(investors, inv)
	}
	return investors, rows.Err()
}

func (r *PgxInvestorRepository) SaveInvestor(ctx context.Context, investor domain.Investor) error {
	return insertInvestor(ctx, r.Pool, investor)
}

func (r *PgxInvestorRepository) UpdateInvestor(ctx context.Context, i domain.Investor) error {
	query := `
		UPDATE investors SET name = $2, capital_invested = $3, dividend_rate = $4, total_payouts = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE investor_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, i.InvestorID, i.Name, i.CapitalInvested, i.DividendRate, i.TotalPayouts,
		i.LastUpdatedAt, i.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update investor %s: %w", i.InvestorID, err)
	}
	return expectOne(tag, "investor", i.InvestorID)
}

type PgxTaskRepository struct {
	BaseRepository
}

var _ portsrepo.TaskRepositoryFacade = (*PgxTaskRepository)(nil)

const taskColumns = `task_id, title, description, assigned_to, due_date, status, priority,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTask(row scanner) (domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.TaskID, &t.Title, &t.Description, &t.AssignedTo, &t.DueDate, &t.Status, &t.Priority,
		&t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy)
	return t, err
}

func insertTask(ctx context.Context, q querier, t domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
	_, err := q.Exec(ctx, query, t.TaskID, t.Title, t.Description, t.AssignedTo, t.DueDate, t.Status, t.Priority,
		t.CreatedAt, t.CreatedBy, t.LastUpdatedAt, t.LastUpdatedBy)
	if err != nil {
		return mapWriteError(err, "task", t.TaskID)
	}
	return nil
}

func (r *PgxTaskRepository) FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	t, err := scanTask(r.Pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE task_id = $1;`, taskID))
	if err != nil {
		return nil, mapReadError(err, "task", taskID)
	}
	return &t, nil
}

func (r *PgxTaskRepository) ListTasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *PgxTaskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	return insertTask(ctx, r.Pool, task)
}

func (r *PgxTaskRepository) UpdateTask(ctx context.Context, t domain.Task) error {
	query := `
		UPDATE tasks SET title = $2, description = $3, assigned_to = $4, due_date = $5, status = $6, priority = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE task_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, t.TaskID, t.Title, t.Description, t.AssignedTo, t.DueDate, t.Status, t.Priority,
		t.LastUpdatedAt, t.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", t.TaskID, err)
	}
	return expectOne(tag, "task", t.TaskID)
}

type PgxAssetRepository struct {
	BaseRepository
}

var _ portsrepo.AssetRepositoryFacade = (*PgxAssetRepository)(nil)

const assetColumns = `asset_id, name, type, value, assigned_to, status, purchase_date, notes,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAsset(row scanner) (domain.Asset, error) {
	var a domain.Asset
	err := row.Scan(&a.AssetID, &a.Name, &a.Type, &a.Value, &a.AssignedTo, &a.Status, &a.PurchaseDate, &a.Notes,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy)
	return a, err
}

func insertAsset(ctx context.Context, q querier, a domain.Asset) error {
	query := `INSERT INTO assets (` + assetColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	_, err := q.Exec(ctx, query, a.AssetID, a.Name, a.Type, a.Value, a.AssignedTo, a.Status, a.PurchaseDate, a.Notes,
		a.CreatedAt, a.CreatedBy, a.LastUpdatedAt, a.LastUpdatedBy)
	if err != nil {
		return mapWriteError(err, "asset", a.AssetID)
	}
	return nil
}

func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error) {
	a, err := scanAsset(r.Pool.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE asset_id = $1;`, assetID))
	if err != nil {
		return nil, mapReadError(err, "asset", assetID)
	}
	return &a, nil
}

func (r *PgxAssetRepository) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY created_at;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	assets := []domain.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset row: %w", err)
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (r *PgxAssetRepository) SaveAsset(ctx context.Context, asset domain.Asset) error {
	return insertAsset(ctx, r.Pool, asset)
}

func (r *PgxAssetRepository) UpdateAsset(ctx context.Context, a domain.Asset) error {
	query := `
		UPDATE assets SET name = $2, type = $3, value = $4, assigned_to = $5, status = $6, purchase_date = $7, notes = $8,
			last_updated_at = $9, last_updated_by = $10
		WHERE asset_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, a.AssetID, a.Name, a.Type, a.Value, a.AssignedTo, a.Status, a.PurchaseDate, a.Notes,
		a.LastUpdatedAt, a.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update asset %s: %w", a.AssetID, err)
	}
	return expectOne(tag, "asset", a.AssetID)
}

func (r *PgxAssetRepository) DeleteAsset(ctx context.Context, assetID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM assets WHERE asset_id = $1;`, assetID)
	if err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", assetID, err)
	}
	return expectOne(tag, "asset", assetID)
}

type PgxAuditRepository struct {
	BaseRepository
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

func insertAuditLog(ctx context.Context, q querier, e domain.AuditLog) error {
	_, err := q.Exec(ctx, `INSERT INTO audit_logs (audit_id, ts, user_name, action, details) VALUES ($1, $2, $3, $4, $5);`,
		e.AuditID, e.Timestamp, e.User, e.Action, e.Details)
	if err != nil {
		return mapWriteError(err, "audit log", e.AuditID)
	}
	return nil
}

func (r *PgxAuditRepository) AppendAuditLog(ctx context.Context, entry domain.AuditLog) error {
	return insertAuditLog(ctx, r.Pool, entry)
}

// ListAuditLogs returns newest first; a limit of 0 returns everything.
func (r *PgxAuditRepository) ListAuditLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	query := `SELECT audit_id, ts, user_name, action, details FROM audit_logs ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.Pool.Query(ctx, query+";", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	logs := []domain.AuditLog{}
	for rows.Next() {
		var e domain.AuditLog
		if err := rows.Scan(&e.AuditID, &e.Timestamp, &e.User, &e.Action, &e.Details); err != nil {
			return nil, fmt.Errorf("failed to scan audit log row: %w", err)
		}
		logs = append(logs, e)
	}
	return logs, rows.Err()
}
