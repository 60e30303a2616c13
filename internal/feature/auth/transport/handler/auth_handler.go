// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"todo_backend/internal/api"
	"todo_backend/internal/feature/auth/domain/entity"
	"todo_backend/internal/feature/auth/transport/http/dto"
	"todo_backend/internal/feature/auth/usecase"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、アクセストークンを返します。
	Register(ctx context.Context, name *string, email, password string) (string, error)
	// Login はユーザーを認証し、成功時にアクセストークンを返します。
	Login(ctx context.Context, email, password string) (string, error)
	// GetUser はIDで公開用のユーザー情報を取得します。
	GetUser(ctx context.Context, id uint) (*entity.User, error)
}

// AuthHandler は認証操作とユーザー参照のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - メール重複時は409を返却
// - 成功時はアクセストークン付きで201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ValidationError(err))
		return
	}

	token, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		slog.Warn("register conflict", "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "user already exists"})
		return
	case errors.Is(err, usecase.ErrInvalidPassword):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:   "invalid request",
			Details: []api.FieldError{{Field: "password", Message: err.Error()}},
		})
		return
	case err != nil:
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	slog.Info("user registered", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.TokenResponse{AccessToken: token, TokenType: api.TokenTypeBearer})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// フォーム形式（username=メールアドレス, password）で受け取ります。
// - バリデーションエラー時は400を返却
// - 認証失敗時は403を返却（メール未登録とパスワード不一致は区別しない）
// - 認証成功時はアクセストークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ValidationError(err))
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "email", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "invalid credentials"})
		return
	case err != nil:
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	slog.Info("user login successful", "email", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{AccessToken: token, TokenType: api.TokenTypeBearer})
}

// GetUser はIDでユーザーの公開情報を返します。
// パスワードハッシュはレスポンスに含めません。
func (h *AuthHandler) GetUser(c *gin.Context) {
	id, err := api.BindID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.auth.GetUser(c.Request.Context(), id)
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: fmt.Sprintf("user with id: %d does not exist", id)})
		return
	case err != nil:
		slog.Error("get user failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, api.UserResponse{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt})
}
