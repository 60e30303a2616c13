// Package dto はtodosフィーチャーのHTTP入出力DTOを提供します。
package dto

// TaskReq はPOST /todos と PUT /todos/:id のリクエストボディです。
// owner_idやidはボディに含まれていても無視されます。
type TaskReq struct {
	Title       string `json:"title" binding:"required,notblank,max=255"`
	Description string `json:"description" binding:"max=2000"`
}
