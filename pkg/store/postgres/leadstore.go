package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jinzhu/copier"
	"github.com/uptrace/bun"

	"github.com/rendetalje/friday/pkg/models"
	"github.com/rendetalje/friday/pkg/store"
)

var _ models.LeadStore = &LeadStoreDAO{}

type LeadStoreDAO struct {
	db *bun.DB
}

func NewLeadStoreDAO(db *bun.DB) *LeadStoreDAO {
	return &LeadStoreDAO{db: db}
}

func (dao *LeadStoreDAO) Create(ctx context.Context, lead *models.Lead) (*models.Lead, error) {
	dbLead := &LeadSchema{}
	if err := copier.Copy(dbLead, lead); err != nil {
		return nil, store.NewStorageError("failed to copy lead", err)
	}
	dbLead.ID = 0

	_, err := dao.db.NewInsert().Model(dbLead).Returning("*").Exec(ctx)
	if err != nil {
		return nil, store.NewStorageError("failed to create lead", err)
	}

	created := &models.Lead{}
	if err := copier.Copy(created, dbLead); err != nil {
		return nil, store.NewStorageError("failed to copy lead", err)
	}
	return created, nil
}

func (dao *LeadStoreDAO) ListByUser(ctx context.Context, userID int64) ([]models.Lead, error) {
	var dbLeads []LeadSchema
	err := dao.db.NewSelect().
		Model(&dbLeads).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, store.NewStorageError("failed to list leads", err)
	}

	leads := make([]models.Lead, len(dbLeads))
	for i := range dbLeads {
		if err := copier.Copy(&leads[i], &dbLeads[i]); err != nil {
			return nil, store.NewStorageError("failed to copy lead", err)
		}
	}
	return leads, nil
}

func (dao *LeadStoreDAO) UpdateStatus(ctx context.Context, leadID int64, status string) error {
	result, err := dao.db.NewUpdate().
		Model(&LeadSchema{}).
		Set("status = ?", status).
		Set("updated_at = current_timestamp").
		Where("id = ?", leadID).
		Exec(ctx)
	if err != nil {
		return store.NewStorageError("failed to update lead status", err)
	}
	return errIfNoRows(result, "lead")
}

func (dao *LeadStoreDAO) UpdateScore(ctx context.Context, leadID int64, score int) error {
	result, err := dao.db.NewUpdate().
		Model(&LeadSchema{}).
		Set("score = ?", score).
		Set("updated_at = current_timestamp").
		Where("id = ?", leadID).
		Exec(ctx)
	if err != nil {
		return store.NewStorageError("failed to update lead score", err)
	}
	return errIfNoRows(result, "lead")
}

func (dao *LeadStoreDAO) Get(ctx context.Context, leadID int64) (*models.Lead, error) {
	dbLead := &LeadSchema{}
	err := dao.db.NewSelect().Model(dbLead).Where("id = ?", leadID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.NewNotFoundError("lead")
		}
		return nil, store.NewStorageError("failed to get lead", err)
	}

	lead := &models.Lead{}
	if err := copier.Copy(lead, dbLead); err != nil {
		return nil, store.NewStorageError("failed to copy lead", err)
	}
	return lead, nil
}

func errIfNoRows(result sql.Result, resource string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return nil
	}
	if rows == 0 {
		return models.NewNotFoundError(resource)
	}
	return nil
}
