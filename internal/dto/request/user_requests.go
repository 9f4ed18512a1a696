package request

// RegisterRequest 用户注册请求
// 使用位置:
//   - internal/handler/user_handler.go: Register
//   - internal/service/user/service.go: Register
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Telephone string `json:"telephone" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
	Nickname  string `json:"nickname" binding:"required"`
	SmsCode   string `json:"smsCode" binding:"required,len=6"`
}

// LoginRequest 邮箱密码登录请求
// 使用位置:
//   - internal/handler/user_handler.go: Login
//   - internal/service/user/service.go: Login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// SmsLoginRequest 短信验证码登录请求
// 使用位置:
//   - internal/handler/user_handler.go: SmsLogin
//   - internal/service/user/service.go: SmsLogin
type SmsLoginRequest struct {
	Telephone string `json:"telephone" binding:"required"`
	SmsCode   string `json:"smsCode" binding:"required,len=6"`
}

// SendSmsCodeRequest 发送短信验证码请求
// 使用位置:
//   - internal/handler/user_handler.go: SendSmsCode
type SendSmsCodeRequest struct {
	Telephone string `json:"telephone" binding:"required"`
}

// RefreshTokenRequest 刷新访问令牌请求
// 使用位置:
//   - internal/handler/user_handler.go: RefreshToken
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UpdateUserRequest 更新用户资料请求
// 使用位置:
//   - internal/handler/user_handler.go: UpdateUser
type UpdateUserRequest struct {
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// UpdateDeviceTokenRequest 更新设备推送令牌请求
// 使用位置:
//   - internal/handler/user_handler.go: UpdateDeviceToken
type UpdateDeviceTokenRequest struct {
	DeviceToken string `json:"deviceToken" binding:"required"`
}
