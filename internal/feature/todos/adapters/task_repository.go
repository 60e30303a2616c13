package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"todo_backend/internal/feature/todos/domain/entity"
	"todo_backend/internal/feature/todos/usecase"
)

// likeEscaper はLIKEパターンのワイルドカードをエスケープします。
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// taskRepository はTaskRepositoryインターフェースのGORM実装です。
type taskRepository struct {
	db *gorm.DB
}

// taskRepositoryがTaskRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.TaskRepository = (*taskRepository)(nil)

// NewTaskRepository は指定されたgorm.DB接続でtaskRepositoryの新しいインスタンスを生成します。
func NewTaskRepository(db *gorm.DB) *taskRepository {
	return &taskRepository{db: db}
}

// List は所有者のタスクをcreated_at DESC, id DESCの順で返します。
func (r *taskRepository) List(ctx context.Context, ownerID uint, search string, limit, offset int) ([]entity.Task, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		q = q.Where(`LOWER(title) LIKE ? ESCAPE '\'`, pattern)
	}

	var models []TaskModel
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error; err != nil {
		return nil, err
	}

	tasks := make([]entity.Task, 0, len(models))
	for i := range models {
		tasks = append(tasks, *models[i].ToEntity())
	}
	return tasks, nil
}

// Create はタスクを追加し、採番されたIDとタイムスタンプをtaskに反映します。
func (r *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	m := FromEntity(task)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*task = *m.ToEntity()
	return nil
}

// FindByID はIDでタスクを取得します。
// タスクが存在しない場合、usecase.ErrTaskNotFoundを返します。
func (r *taskRepository) FindByID(ctx context.Context, id uint) (*entity.Task, error) {
	var m TaskModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// Update は行をロックして取得し、applyの結果を同じトランザクションで書き込みます。
func (r *taskRepository) Update(ctx context.Context, id uint, apply func(*entity.Task) error) (*entity.Task, error) {
	var updated *entity.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := lockTask(tx, id)
		if err != nil {
			return err
		}

		task := m.ToEntity()
		if err := apply(task); err != nil {
			return err
		}

		m.Title = task.Title
		m.Description = task.Description
		if err := tx.Model(m).Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
		}).Error; err != nil {
			return err
		}
		updated = m.ToEntity()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete は行をロックして取得し、guardが許可した場合に同じトランザクションで削除します。
func (r *taskRepository) Delete(ctx context.Context, id uint, guard func(*entity.Task) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := lockTask(tx, id)
		if err != nil {
			return err
		}
		if err := guard(m.ToEntity()); err != nil {
			return err
		}
		return tx.Delete(&TaskModel{}, m.ID).Error
	})
}

// lockTask はSELECT ... FOR UPDATEで行を取得します。
// SQLiteではロック句は無視されます。
func lockTask(tx *gorm.DB, id uint) (*TaskModel, error) {
	var m TaskModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	return &m, nil
}
