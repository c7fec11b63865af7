package postgres

import (
	"context"

	"github.com/jinzhu/copier"
	"github.com/uptrace/bun"

	"github.com/rendetalje/friday/pkg/models"
	"github.com/rendetalje/friday/pkg/store"
)

var _ models.TaskStore = &TaskStoreDAO{}

type TaskStoreDAO struct {
	db *bun.DB
}

func NewTaskStoreDAO(db *bun.DB) *TaskStoreDAO {
	return &TaskStoreDAO{db: db}
}

func (dao *TaskStoreDAO) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	dbTask := &TaskSchema{}
	if err := copier.Copy(dbTask, task); err != nil {
		return nil, store.NewStorageError("failed to copy task", err)
	}
	dbTask.ID = 0

	_, err := dao.db.NewInsert().Model(dbTask).Returning("*").Exec(ctx)
	if err != nil {
		return nil, store.NewStorageError("failed to create task", err)
	}

	created := &models.Task{}
	if err := copier.Copy(created, dbTask); err != nil {
		return nil, store.NewStorageError("failed to copy task", err)
	}
	return created, nil
}

func (dao *TaskStoreDAO) ListByUser(ctx context.Context, userID int64) ([]models.Task, error) {
	var dbTasks []TaskSchema
	err := dao.db.NewSelect().
		Model(&dbTasks).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, store.NewStorageError("failed to list tasks", err)
	}

	tasks := make([]models.Task, len(dbTasks))
	for i := range dbTasks {
		if err := copier.Copy(&tasks[i], &dbTasks[i]); err != nil {
			return nil, store.NewStorageError("failed to copy task", err)
		}
	}
	return tasks, nil
}

func (dao *TaskStoreDAO) UpdateStatus(ctx context.Context, taskID int64, status string) error {
	result, err := dao.db.NewUpdate().
		Model(&TaskSchema{}).
		Set("status = ?", status).
		Set("updated_at = current_timestamp").
		Where("id = ?", taskID).
		Exec(ctx)
	if err != nil {
		return store.NewStorageError("failed to update task status", err)
	}
	return errIfNoRows(result, "task")
}
