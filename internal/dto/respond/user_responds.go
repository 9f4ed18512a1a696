package respond

// UserInfoRespond 用户公开资料响应
// 使用位置:
//   - internal/service/user/service.go: GetUserInfo, SearchUsers
type UserInfoRespond struct {
	Uuid      string `json:"uuid"`
	Nickname  string `json:"nickname"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
	CreatedAt string `json:"createdAt"`
}

// LoginRespond 用户登录响应
// 使用位置:
//   - internal/service/user/service.go: Login, SmsLogin, Register
type LoginRespond struct {
	Uuid         string `json:"uuid"`
	Nickname     string `json:"nickname"`
	Email        string `json:"email"`
	Telephone    string `json:"telephone"`
	Avatar       string `json:"avatar"`
	CreatedAt    string `json:"createdAt"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
