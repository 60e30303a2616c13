// Package usecase はtodosフィーチャーのビジネスロジックを提供します。
package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"todo_backend/internal/feature/todos/domain/entity"
)

const (
	// DefaultMaxLimit は1ページあたりの最大件数のデフォルト値です。
	DefaultMaxLimit = 10

	maxTitleLength       = 255
	maxDescriptionLength = 2000
)

// TaskRepository はタスクの永続化層を抽象化します。
type TaskRepository interface {
	// List は所有者のタスクを作成日時の新しい順に返します。
	// searchが空でない場合、タイトルの部分一致（大文字小文字を区別しない）で絞り込みます。
	List(ctx context.Context, ownerID uint, search string, limit, offset int) ([]entity.Task, error)

	// Create はタスクを永続化し、IDとタイムスタンプを設定します。
	Create(ctx context.Context, task *entity.Task) error

	// FindByID はIDでタスクを取得します。存在しない場合はErrTaskNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Task, error)

	// Update はトランザクション内で行をロックして取得し、applyを適用して保存します。
	// 行が存在しない場合はapplyを呼ばずにErrTaskNotFoundを返します。
	// applyがエラーを返した場合は何も書き込まずにそのエラーを返します。
	Update(ctx context.Context, id uint, apply func(*entity.Task) error) (*entity.Task, error)

	// Delete はトランザクション内で行をロックして取得し、guardが許可した場合に削除します。
	// 行が存在しない場合はguardを呼ばずにErrTaskNotFoundを返します。
	Delete(ctx context.Context, id uint, guard func(*entity.Task) error) error
}

// ListQuery is the caller's view of a listing request before normalization.
type ListQuery struct {
	Search string
	Limit  int
	Page   int
}

// TaskPage is one page of a listing.
// Total is the number of tasks on this page, not across all pages.
type TaskPage struct {
	Tasks []entity.Task
	Limit int
	Page  int
	Total int
}

// TaskUsecase は所有者スコープのタスク操作を実装します。
type TaskUsecase struct {
	tasks    TaskRepository
	maxLimit int
}

// NewTaskUsecase はTaskUsecaseの新しいインスタンスを生成します。
// maxLimitが0以下の場合はDefaultMaxLimitを使用します。
func NewTaskUsecase(tasks TaskRepository, maxLimit int) *TaskUsecase {
	if maxLimit <= 0 {
		maxLimit = DefaultMaxLimit
	}
	return &TaskUsecase{tasks: tasks, maxLimit: maxLimit}
}

// ValidateTask はタイトルと説明の制約を検証します。
func ValidateTask(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title must not be blank", ErrInvalidTask)
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrInvalidTask, maxTitleLength)
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidTask, maxDescriptionLength)
	}
	return nil
}

// normalize はlimitとpageを有効範囲に丸めます。
func (u *TaskUsecase) normalize(q ListQuery) (limit, page int) {
	limit = q.Limit
	if limit <= 0 || limit > u.maxLimit {
		limit = u.maxLimit
	}
	page = q.Page
	if page <= 0 {
		page = 1
	}
	return limit, page
}

// checkOwner は存在確認済みのタスクの所有者を検証します。
func checkOwner(ownerID uint) func(*entity.Task) error {
	return func(t *entity.Task) error {
		if !t.OwnedBy(ownerID) {
			return ErrForbidden
		}
		return nil
	}
}

// List は所有者のタスクを1ページ分返します。
func (u *TaskUsecase) List(ctx context.Context, ownerID uint, q ListQuery) (*TaskPage, error) {
	limit, page := u.normalize(q)
	// オフセットがintに収まらないページには行が存在しない
	if page-1 > math.MaxInt/limit {
		return &TaskPage{Tasks: []entity.Task{}, Limit: limit, Page: page}, nil
	}
	offset := (page - 1) * limit

	tasks, err := u.tasks.List(ctx, ownerID, q.Search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []entity.Task{}
	}
	return &TaskPage{Tasks: tasks, Limit: limit, Page: page, Total: len(tasks)}, nil
}

// Create は所有者を操作ユーザーに固定してタスクを作成します。
func (u *TaskUsecase) Create(ctx context.Context, ownerID uint, title, description string) (*entity.Task, error) {
	if err := ValidateTask(title, description); err != nil {
		return nil, err
	}

	task := &entity.Task{Title: title, Description: description, OwnerID: ownerID}
	if err := u.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// Get は所有者のタスクを1件返します。
// 存在しない場合はErrTaskNotFound、他ユーザーの所有の場合はErrForbiddenを返します。
func (u *TaskUsecase) Get(ctx context.Context, ownerID, id uint) (*entity.Task, error) {
	task, err := u.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(ownerID)(task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update はタスクのタイトルと説明を上書きします。
// 存在確認、所有者確認、書き込みは1つのトランザクション内で行われます。
func (u *TaskUsecase) Update(ctx context.Context, ownerID, id uint, title, description string) (*entity.Task, error) {
	if err := ValidateTask(title, description); err != nil {
		return nil, err
	}

	guard := checkOwner(ownerID)
	return u.tasks.Update(ctx, id, func(t *entity.Task) error {
		if err := guard(t); err != nil {
			return err
		}
		t.Title = title
		t.Description = description
		return nil
	})
}

// Delete は所有者のタスクを削除します。
func (u *TaskUsecase) Delete(ctx context.Context, ownerID, id uint) error {
	return u.tasks.Delete(ctx, id, checkOwner(ownerID))
}
