// Package password はbcryptによるパスワードのハッシュ化と検証を提供します。
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrTooLong はbcryptの入力上限（72バイト）を超えるパスワードに対して返されます。
var ErrTooLong = errors.New("password exceeds 72 bytes")

// Hasher はパスワードの一方向ハッシュ化と検証を行います。
type Hasher struct {
	cost int
}

// NewHasher は指定されたコストでHasherを生成します。
// コストがbcryptの範囲外の場合はbcrypt.DefaultCostを使用します。
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash は平文パスワードからソルト付きハッシュを生成します。
// ソルトはハッシュ文字列に埋め込まれるため、呼び出しごとに結果が異なります。
func (h *Hasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrTooLong
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify は平文パスワードがハッシュと一致するかを返します。
// 不正な形式のハッシュは不一致として扱います。
func (h *Hasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
