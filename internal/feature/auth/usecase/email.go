package usecase

import "strings"

// NormalizeEmail はメールアドレスを比較・保存用の正規形にします。
// 前後の空白を除き、アドレス全体を小文字にします。
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
