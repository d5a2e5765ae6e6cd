package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nextgenrdp/platform/internal/domain"
)

// PlanRepository defines persistence access for the plan catalog.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) error
	Update(ctx context.Context, plan *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Plan, error)
	ListActive(ctx context.Context) ([]*domain.Plan, error)
	ListAll(ctx context.Context) ([]*domain.Plan, error)
}

type planRepository struct {
	pool *pgxpool.Pool
}

// NewPlanRepository returns a Postgres-backed implementation.
func NewPlanRepository(pool *pgxpool.Pool) PlanRepository {
	return &planRepository{pool: pool}
}

const planColumns = `id, slug, name, type, cpu_cores, ram_mb, disk_gb, bandwidth_tb, monthly_price_cents, active, created_at, updated_at`

func (r *planRepository) Create(ctx context.Context, plan *domain.Plan) error {
	const query = `
        INSERT INTO plans (slug, name, type, cpu_cores, ram_mb, disk_gb, bandwidth_tb, monthly_price_cents, active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		plan.Slug,
		plan.Name,
		plan.Type,
		plan.CPUCores,
		plan.RAMMegabytes,
		plan.DiskGigabytes,
		plan.BandwidthTB,
		plan.MonthlyPriceCents,
		plan.Active,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
}

func (r *planRepository) Update(ctx context.Context, plan *domain.Plan) error {
	const query = `
        UPDATE plans SET slug=$1, name=$2, type=$3, cpu_cores=$4, ram_mb=$5, disk_gb=$6,
            bandwidth_tb=$7, monthly_price_cents=$8, active=$9, updated_at=NOW()
        WHERE id=$10`

	cmd, err := r.pool.Exec(ctx, query,
		plan.Slug,
		plan.Name,
		plan.Type,
		plan.CPUCores,
		plan.RAMMegabytes,
		plan.DiskGigabytes,
		plan.BandwidthTB,
		plan.MonthlyPriceCents,
		plan.Active,
		plan.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *planRepository) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT `+planColumns+` FROM plans WHERE id=$1`, id))
}

func (r *planRepository) GetBySlug(ctx context.Context, slug string) (*domain.Plan, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT `+planColumns+` FROM plans WHERE slug=$1`, slug))
}

func (r *planRepository) ListActive(ctx context.Context) ([]*domain.Plan, error) {
	return r.list(ctx, `SELECT `+planColumns+` FROM plans WHERE active ORDER BY monthly_price_cents`)
}

func (r *planRepository) ListAll(ctx context.Context) ([]*domain.Plan, error) {
	return r.list(ctx, `SELECT `+planColumns+` FROM plans ORDER BY monthly_price_cents`)
}

func (r *planRepository) list(ctx context.Context, query string) ([]*domain.Plan, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*domain.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

func (r *planRepository) scanOne(row pgx.Row) (*domain.Plan, error) {
	return scanPlan(row)
}

func scanPlan(row pgx.Row) (*domain.Plan, error) {
	var plan domain.Plan
	if err := row.Scan(
		&plan.ID,
		&plan.Slug,
		&plan.Name,
		&plan.Type,
		&plan.CPUCores,
		&plan.RAMMegabytes,
		&plan.DiskGigabytes,
		&plan.BandwidthTB,
		&plan.MonthlyPriceCents,
		&plan.Active,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &plan, nil
}
