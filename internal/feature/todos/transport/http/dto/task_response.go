package dto

import (
	"todo_backend/internal/api"
	"todo_backend/internal/feature/todos/domain/entity"
)

// ToTaskResponse はエンティティをレスポンスDTOに変換します。
func ToTaskResponse(t *entity.Task) api.TaskResponse {
	return api.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		OwnerID:     t.OwnerID,
		CreatedAt:   t.CreatedAt,
	}
}

// ToTaskListResponse はタスクの1ページ分をレスポンスDTOに変換します。
func ToTaskListResponse(tasks []entity.Task, limit, page, total int) api.TaskListResponse {
	data := make([]api.TaskResponse, 0, len(tasks))
	for i := range tasks {
		data = append(data, ToTaskResponse(&tasks[i]))
	}
	return api.TaskListResponse{Data: data, Limit: limit, Page: page, Total: total}
}
