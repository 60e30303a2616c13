package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"todo_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8
	// maxPasswordLength はbcryptが扱える最大バイト数です。
	maxPasswordLength = 72

	// dummyHash はユーザーが存在しない場合にも検証処理を走らせるためのbcryptハッシュです。
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// PasswordHasher はパスワードの一方向ハッシュ化と検証を定義します。
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// TokenIssuer はアクセストークン発行のインターフェースを定義します。
type TokenIssuer interface {
	// GenerateToken は指定されたメールアドレスを識別クレームとする署名済みトークンを生成します。
	GenerateToken(email string) (string, error)
}

// AuthUsecase はユーザー登録・ログイン・参照のビジネスロジックを実装します。
type AuthUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewAuthUsecase はAuthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// validatePassword はパスワードが長さの要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters long", ErrInvalidPassword, minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("%w: must be at most %d bytes long", ErrInvalidPassword, maxPasswordLength)
	}
	return nil
}

// Register は新規ユーザーを登録し、そのユーザーのアクセストークンを返します。
// メールアドレスが登録済みの場合、レコードを作成せずにErrEmailAlreadyExistsを返します。
func (u *AuthUsecase) Register(ctx context.Context, name *string, email, password string) (string, error) {
	if err := validatePassword(password); err != nil {
		return "", err
	}
	email = NormalizeEmail(email)

	// 作成前に重複を確認する
	_, err := u.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return "", ErrEmailAlreadyExists
	case !errors.Is(err, ErrUserNotFound):
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		name = &trimmed
		if trimmed == "" {
			name = nil
		}
	}

	user := &entity.User{Name: name, Email: email, PasswordHash: hashed}
	if err := u.users.Create(ctx, user); err != nil {
		// 同時登録はユニーク制約がErrEmailAlreadyExistsとして返す
		return "", err
	}

	token, err := u.tokens.GenerateToken(user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Login はユーザーを認証し、成功時にアクセストークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもハッシュ比較を実行します。
// メール未登録とパスワード不一致はどちらもErrInvalidCredentialsになります。
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.PasswordHash
	}

	// 常にパスワードを検証する
	matched := u.hasher.Verify(password, passwordHash)
	if err != nil || !matched {
		return "", ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateToken(user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// GetUser はIDでユーザーを取得し、パスワードハッシュを除いた公開用の値を返します。
func (u *AuthUsecase) GetUser(ctx context.Context, id uint) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}
