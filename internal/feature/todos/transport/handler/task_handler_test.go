package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"todo_backend/internal/api"
	authentity "todo_backend/internal/feature/auth/domain/entity"
	"todo_backend/internal/feature/todos/domain/entity"
	"todo_backend/internal/feature/todos/transport/handler"
	"todo_backend/internal/feature/todos/usecase"
	jwtmw "todo_backend/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	api.RegisterValidators()
	os.Exit(m.Run())
}

// mockTaskUsecase はTaskUsecaseインターフェースのモック実装です。
type mockTaskUsecase struct {
	ListFunc   func(ctx context.Context, ownerID uint, q usecase.ListQuery) (*usecase.TaskPage, error)
	CreateFunc func(ctx context.Context, ownerID uint, title, description string) (*entity.Task, error)
	GetFunc    func(ctx context.Context, ownerID, id uint) (*entity.Task, error)
	UpdateFunc func(ctx context.Context, ownerID, id uint, title, description string) (*entity.Task, error)
	DeleteFunc func(ctx context.Context, ownerID, id uint) error
}

func (m *mockTaskUsecase) List(ctx context.Context, ownerID uint, q usecase.ListQuery) (*usecase.TaskPage, error) {
	return m.ListFunc(ctx, ownerID, q)
}

func (m *mockTaskUsecase) Create(ctx context.Context, ownerID uint, title, description string) (*entity.Task, error) {
	return m.CreateFunc(ctx, ownerID, title, description)
}

func (m *mockTaskUsecase) Get(ctx context.Context, ownerID, id uint) (*entity.Task, error) {
	return m.GetFunc(ctx, ownerID, id)
}

func (m *mockTaskUsecase) Update(ctx context.Context, ownerID, id uint, title, description string) (*entity.Task, error) {
	return m.UpdateFunc(ctx, ownerID, id, title, description)
}

func (m *mockTaskUsecase) Delete(ctx context.Context, ownerID, id uint) error {
	return m.DeleteFunc(ctx, ownerID, id)
}

var testTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// newRouter は認証済みユーザー(ID=1)を設定した状態でハンドラーを登録します。
func newRouter(uc handler.TaskUsecase, authenticated bool) *gin.Engine {
	h := handler.NewTaskHandler(uc)
	r := gin.New()
	g := r.Group("/todos", func(c *gin.Context) {
		if authenticated {
			c.Set(jwtmw.ContextUser, &authentity.User{ID: 1, Email: "a@x.com"})
		}
		c.Next()
	})
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r
}

func serve(r *gin.Engine, method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTaskHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		mockList       func(ctx context.Context, ownerID uint, q usecase.ListQuery) (*usecase.TaskPage, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: all parameters specified",
			url:  "/todos?limit=5&page=2&search=milk",
			mockList: func(ctx context.Context, ownerID uint, q usecase.ListQuery) (*usecase.TaskPage, error) {
				assert.Equal(t, uint(1), ownerID)
				assert.Equal(t, usecase.ListQuery{Search: "milk", Limit: 5, Page: 2}, q)
				return &usecase.TaskPage{
					Tasks: []entity.Task{{ID: 3, Title: "milk", Description: "", OwnerID: 1, CreatedAt: testTime}},
					Limit: 5, Page: 2, Total: 1,
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"data":[{"id":3,"title":"milk","description":"","owner_id":1,"created_at":"2026-01-02T03:04:05Z"}],"limit":5,"page":2,"total":1}`,
		},
		{
			name: "success: defaults and empty page",
			url:  "/todos",
			mockList: func(ctx context.Context, ownerID uint, q usecase.ListQuery) (*usecase.TaskPage, error) {
				assert.Equal(t, usecase.ListQuery{}, q)
				return &usecase.TaskPage{Tasks: []entity.Task{}, Limit: 10, Page: 1}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"data":[],"limit":10,"page":1,"total":0}`,
		},
		{
			name:           "failure: non-numeric limit",
			url:            "/todos?limit=ten",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "failure: store error",
			url:  "/todos",
			mockList: func(ctx context.Context, ownerID uint, q usecase.ListQuery) (*usecase.TaskPage, error) {
				return nil, errors.New("connection refused")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newRouter(&mockTaskUsecase{ListFunc: tt.mockList}, true), http.MethodGet, tt.url, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestTaskHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockCreate     func(ctx context.Context, ownerID uint, title, description string) (*entity.Task, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: owner comes from the token, not the body",
			body: `{"title":"walk the dog","description":"park","owner_id":99}`,
			mockCreate: func(ctx context.Context, ownerID uint, title, description string) (*entity.Task, error) {
				assert.Equal(t, uint(1), ownerID)
				return &entity.Task{ID: 10, Title: title, Description: description, OwnerID: ownerID, CreatedAt: testTime}, nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"id":10,"title":"walk the dog","description":"park","owner_id":1,"created_at":"2026-01-02T03:04:05Z"}`,
		},
		{
			name:           "failure: missing title",
			body:           `{"description":"x"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request","details":[{"field":"title","message":"is required"}]}`,
		},
		{
			name:           "failure: blank title",
			body:           `{"title":"   "}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request","details":[{"field":"title","message":"must not be blank"}]}`,
		},
		{
			name:           "failure: description too long",
			body:           `{"title":"t","description":"` + strings.Repeat("d", 2001) + `"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request","details":[{"field":"description","message":"must be at most 2000 characters"}]}`,
		},
		{
			name:           "failure: malformed json",
			body:           `{"title":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newRouter(&mockTaskUsecase{CreateFunc: tt.mockCreate}, true), http.MethodPost, "/todos", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestTaskHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"not found", usecase.ErrTaskNotFound, http.StatusNotFound},
		{"forbidden", usecase.ErrForbidden, http.StatusForbidden},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockTaskUsecase{
				GetFunc: func(ctx context.Context, ownerID, id uint) (*entity.Task, error) {
					return nil, tt.err
				},
				UpdateFunc: func(ctx context.Context, ownerID, id uint, title, description string) (*entity.Task, error) {
					return nil, tt.err
				},
				DeleteFunc: func(ctx context.Context, ownerID, id uint) error {
					return tt.err
				},
			}
			r := newRouter(uc, true)

			assert.Equal(t, tt.expectedStatus, serve(r, http.MethodGet, "/todos/5", "").Code)
			assert.Equal(t, tt.expectedStatus, serve(r, http.MethodPut, "/todos/5", `{"title":"x"}`).Code)
			assert.Equal(t, tt.expectedStatus, serve(r, http.MethodDelete, "/todos/5", "").Code)
		})
	}
}

func TestTaskHandler_Update(t *testing.T) {
	uc := &mockTaskUsecase{
		UpdateFunc: func(ctx context.Context, ownerID, id uint, title, description string) (*entity.Task, error) {
			assert.Equal(t, uint(1), ownerID)
			assert.Equal(t, uint(5), id)
			return &entity.Task{ID: id, Title: title, Description: description, OwnerID: ownerID, CreatedAt: testTime}, nil
		},
	}

	w := serve(newRouter(uc, true), http.MethodPut, "/todos/5", `{"title":"updated title","description":"updated description","id":5}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":5,"title":"updated title","description":"updated description","owner_id":1,"created_at":"2026-01-02T03:04:05Z"}`, w.Body.String())
}

func TestTaskHandler_Delete(t *testing.T) {
	uc := &mockTaskUsecase{
		DeleteFunc: func(ctx context.Context, ownerID, id uint) error {
			assert.Equal(t, uint(8), id)
			return nil
		},
	}

	w := serve(newRouter(uc, true), http.MethodDelete, "/todos/8", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestTaskHandler_InvalidID(t *testing.T) {
	r := newRouter(&mockTaskUsecase{}, true)

	for _, path := range []string{"/todos/abc", "/todos/0", "/todos/-3"} {
		assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, path, "").Code, path)
		assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodDelete, path, "").Code, path)
	}
}

func TestTaskHandler_NoUserInContext(t *testing.T) {
	r := newRouter(&mockTaskUsecase{}, false)

	w := serve(r, http.MethodGet, "/todos", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
