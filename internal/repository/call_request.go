package repository

import (
	"context"

	"webshop-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CallRequestRepository interface {
	// Upsert inserts the request, absorbing phone-number collisions.
	// It reports whether the submission was a duplicate.
	Upsert(ctx context.Context, req *model.CallRequest) (bool, error)
}

type callRequestRepoImpl struct {
	db *gorm.DB
}

func NewCallRequestRepository(db *gorm.DB) CallRequestRepository {
	return &callRequestRepoImpl{
		db: db,
	}
}

func (r *callRequestRepoImpl) Upsert(ctx context.Context, req *model.CallRequest) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		DoNothing: true,
	}).Create(req)

	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected == 0, nil
}
