// Package adapters はtodosフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"time"

	authentity "todo_backend/internal/feature/auth/domain/entity"
	"todo_backend/internal/feature/todos/domain/entity"
)

// TaskModel はtasksテーブルのGORMモデルです。
// ユーザー削除時にタスクも削除されるよう外部キーにCASCADEを設定します。
type TaskModel struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"size:255;not null"`
	Description string    `gorm:"size:2000;not null;default:''"`
	OwnerID     uint      `gorm:"not null;index:idx_tasks_owner_created,priority:1"`
	CreatedAt   time.Time `gorm:"index:idx_tasks_owner_created,priority:2"`
	UpdatedAt   time.Time

	Owner *authentity.User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// TableName はGORMが使用するテーブル名を返します。
func (TaskModel) TableName() string {
	return "tasks"
}

// ToEntity はモデルをドメインエンティティに変換します。
func (m *TaskModel) ToEntity() *entity.Task {
	return &entity.Task{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		OwnerID:     m.OwnerID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromEntity はドメインエンティティからモデルを生成します。
func FromEntity(t *entity.Task) *TaskModel {
	return &TaskModel{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		OwnerID:     t.OwnerID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
