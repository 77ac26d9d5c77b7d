package postgres

import (
	"context"

	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/miketud/realestateapp/internal/domain"
)

type PurchaseRepo struct {
	table[domain.PurchaseDetails]
}

func NewPurchaseRepo(pool *pgxpool.Pool) *PurchaseRepo {
	return &PurchaseRepo{table: newTable[domain.PurchaseDetails](pool, "purchase_details", domain.ErrPurchaseNotFound)}
}

func (r *PurchaseRepo) GetByProperty(ctx context.Context, propertyID int64) (*domain.PurchaseDetails, error) {
	return r.getWhere(ctx, exp.Ex{colPropertyID: propertyID})
}

func (r *PurchaseRepo) Upsert(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.PurchaseDetails, bool, error) {
	row := fields.Clone()
	row[colPropertyID] = propertyID
	return r.upsert(ctx, []string{colPropertyID}, row)
}

func (r *PurchaseRepo) UpdateByProperty(ctx context.Context, propertyID int64, fields domain.Fields) (*domain.PurchaseDetails, error) {
	return r.updateWhere(ctx, exp.Ex{colPropertyID: propertyID}, fields)
}

func (r *PurchaseRepo) DeleteByProperty(ctx context.Context, propertyID int64) error {
	return r.deleteWhere(ctx, exp.Ex{colPropertyID: propertyID})
}
