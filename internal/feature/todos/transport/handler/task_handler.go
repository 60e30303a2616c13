// Package handler はtodosフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"todo_backend/internal/api"
	"todo_backend/internal/feature/todos/domain/entity"
	"todo_backend/internal/feature/todos/transport/http/dto"
	"todo_backend/internal/feature/todos/usecase"
	jwtmw "todo_backend/internal/platform/jwt"
)

// TaskUsecase はタスク操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type TaskUsecase interface {
	List(ctx context.Context, ownerID uint, q usecase.ListQuery) (*usecase.TaskPage, error)
	Create(ctx context.Context, ownerID uint, title, description string) (*entity.Task, error)
	Get(ctx context.Context, ownerID, id uint) (*entity.Task, error)
	Update(ctx context.Context, ownerID, id uint, title, description string) (*entity.Task, error)
	Delete(ctx context.Context, ownerID, id uint) error
}

// TaskHandler はタスクのHTTPリクエストを処理します。
// すべてのエンドポイントはAuthRequiredミドルウェアの後ろに配置されます。
type TaskHandler struct {
	uc TaskUsecase
}

// NewTaskHandler は指定されたusecaseでTaskHandlerの新しいインスタンスを生成します。
func NewTaskHandler(uc TaskUsecase) *TaskHandler {
	return &TaskHandler{uc: uc}
}

// List は認証ユーザーのタスクをページ単位で返します。
//
// エンドポイント例:
// GET /todos?limit=5&page=1&search=milk
func (h *TaskHandler) List(c *gin.Context) {
	ownerID, ok := actingUserID(c)
	if !ok {
		return
	}

	params, err := api.BindListTodosParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	q := usecase.ListQuery{}
	if params.Limit != nil {
		q.Limit = *params.Limit
	}
	if params.Page != nil {
		q.Page = *params.Page
	}
	if params.Search != nil {
		q.Search = *params.Search
	}

	page, err := h.uc.List(c.Request.Context(), ownerID, q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(page.Tasks, page.Limit, page.Page, page.Total))
}

// Create は認証ユーザーを所有者としてタスクを作成します。
func (h *TaskHandler) Create(c *gin.Context) {
	ownerID, ok := actingUserID(c)
	if !ok {
		return
	}

	var req dto.TaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ValidationError(err))
		return
	}

	task, err := h.uc.Create(c.Request.Context(), ownerID, req.Title, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	slog.Info("task created", "task_id", task.ID, "owner_id", ownerID)
	c.JSON(http.StatusCreated, dto.ToTaskResponse(task))
}

// Get は認証ユーザーのタスクを1件返します。
func (h *TaskHandler) Get(c *gin.Context) {
	ownerID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, err := api.BindID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	task, err := h.uc.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// Update はタスクのタイトルと説明を上書きします。
func (h *TaskHandler) Update(c *gin.Context) {
	ownerID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, err := api.BindID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	var req dto.TaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ValidationError(err))
		return
	}

	task, err := h.uc.Update(c.Request.Context(), ownerID, id, req.Title, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// Delete はタスクを削除し、204を返します。
func (h *TaskHandler) Delete(c *gin.Context) {
	ownerID, ok := actingUserID(c)
	if !ok {
		return
	}
	id, err := api.BindID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.uc.Delete(c.Request.Context(), ownerID, id); err != nil {
		respondError(c, err)
		return
	}

	slog.Info("task deleted", "task_id", id, "owner_id", ownerID)
	c.Status(http.StatusNoContent)
}

// actingUserID はミドルウェアが設定したユーザーのIDを返します。
// ユーザーが設定されていない場合は401を返して処理を中断します。
func actingUserID(c *gin.Context) (uint, bool) {
	user, ok := jwtmw.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "could not validate credentials"})
		return 0, false
	}
	return user.ID, true
}

// respondError はusecaseのエラーをHTTPステータスに変換します。
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "task not found"})
	case errors.Is(err, usecase.ErrForbidden):
		slog.Warn("task access denied", "path", c.Request.URL.Path, "remote_addr", c.ClientIP())
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "not authorized to perform requested action"})
	case errors.Is(err, usecase.ErrInvalidTask):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("task operation failed", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}
