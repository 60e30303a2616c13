package dto

// LoginReq は/loginエンドポイントのフォームボディを表します。
// usernameにはメールアドレスを指定します。
type LoginReq struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}
