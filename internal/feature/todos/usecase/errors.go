package usecase

import "errors"

var (
	// ErrTaskNotFound はタスクが存在しない場合に返されます。
	ErrTaskNotFound = errors.New("task not found")
	// ErrForbidden はタスクが他のユーザーの所有である場合に返されます。
	ErrForbidden = errors.New("not enough permissions")
	// ErrInvalidTask はタイトルまたは説明が制約を満たさない場合に返されます。
	ErrInvalidTask = errors.New("invalid task")
)
