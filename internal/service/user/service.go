// Package user 实现用户业务逻辑
// 处理注册、登录（密码/短信）、令牌刷新与资料管理
package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nuri_social_server/internal/dao/mysql"
	myredis "nuri_social_server/internal/dao/redis"
	"nuri_social_server/internal/dto/request"
	"nuri_social_server/internal/dto/respond"
	"nuri_social_server/internal/infrastructure/sms"
	"nuri_social_server/internal/model"
	"nuri_social_server/pkg/constants"
	"nuri_social_server/pkg/errorx"
	"nuri_social_server/pkg/util/jwt"
)

// userService 用户业务逻辑实现
type userService struct {
	repos *mysql.Repositories
	cache myredis.CacheService
	sms   sms.SmsService
}

// NewUserService 构造函数，注入 Repository 聚合、缓存与短信服务
func NewUserService(repos *mysql.Repositories, cache myredis.CacheService, smsService sms.SmsService) *userService {
	return &userService{repos: repos, cache: cache, sms: smsService}
}

// SendSmsCode 发送短信验证码
func (s *userService) SendSmsCode(telephone string) error {
	return s.sms.SendVerificationCode(telephone)
}

// checkSmsCode 校验短信验证码，通过后立即失效
func (s *userService) checkSmsCode(telephone, code string) error {
	key := "auth_code_" + telephone
	stored, err := s.cache.Get(context.Background(), key)
	if err != nil {
		zap.L().Error("读取验证码缓存失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if stored == "" || stored != code {
		return errorx.New(errorx.CodeInvalidParam, "验证码错误或已过期")
	}
	// 一次性验证码，验证通过即删除
	if err := s.cache.Delete(context.Background(), key); err != nil {
		zap.L().Warn("删除已用验证码失败", zap.Error(err))
	}
	return nil
}

// Register 用户注册
// 校验短信验证码，邮箱全局唯一，事务内创建用户与凭证
func (s *userService) Register(req request.RegisterRequest) (*respond.LoginRespond, error) {
	if err := s.checkSmsCode(req.Telephone, req.SmsCode); err != nil {
		return nil, err
	}

	if _, err := s.repos.User.FindByEmail(req.Email); err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "该邮箱已注册")
	} else if !errorx.IsNotFound(err) {
		return nil, err
	}

	user := model.UserInfo{
		Uuid:      uuid.NewString(),
		Nickname:  req.Nickname,
		Email:     req.Email,
		Telephone: req.Telephone,
	}
	credential := model.Credential{UserUuid: user.Uuid}
	if err := credential.SetPassword(req.Password); err != nil {
		zap.L().Error("密码哈希失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	err := s.repos.Transaction(func(tx *mysql.Repositories) error {
		if err := tx.User.Create(&user); err != nil {
			return err
		}
		return tx.Credential.Create(&credential)
	})
	if err != nil {
		if errorx.IsConflict(err) {
			return nil, errorx.New(errorx.CodeUserExist, "该邮箱已注册")
		}
		return nil, err
	}
	zap.L().Info("用户注册成功", zap.String("user", user.Uuid))

	return s.issueTokens(&user)
}

// Login 邮箱密码登录
func (s *userService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := s.repos.User.FindByEmail(req.Email)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在，请注册")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	credential, err := s.repos.Credential.FindByUserUuid(user.Uuid)
	if err != nil {
		zap.L().Error("查询用户凭证失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if !credential.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "密码不正确，请重试")
	}
	return s.issueTokens(user)
}

// SmsLogin 短信验证码登录
func (s *userService) SmsLogin(req request.SmsLoginRequest) (*respond.LoginRespond, error) {
	if err := s.checkSmsCode(req.Telephone, req.SmsCode); err != nil {
		return nil, err
	}
	user, err := s.repos.User.FindByTelephone(req.Telephone)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "该手机号未注册")
		}
		return nil, err
	}
	return s.issueTokens(user)
}

// RefreshToken 刷新访问令牌
// Refresh Token ID 需与 Redis 中存储的一致，换新后旧 Token 即失效
func (s *userService) RefreshToken(refreshToken string) (*respond.LoginRespond, error) {
	claims, err := jwt.ParseToken(refreshToken)
	if err != nil || claims.TokenID == "" {
		return nil, errorx.New(errorx.CodeUnauthorized, "无效的刷新令牌")
	}

	redisKey := "user_token:" + claims.UserID
	storedID, err := s.cache.GetOrError(context.Background(), redisKey)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUnauthorized, "刷新令牌已失效，请重新登录")
		}
		zap.L().Error("读取 Token ID 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if storedID != claims.TokenID {
		return nil, errorx.New(errorx.CodeUnauthorized, "刷新令牌已失效，请重新登录")
	}

	user, err := s.repos.User.FindByUuid(claims.UserID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		return nil, err
	}
	return s.issueTokens(user)
}

// issueTokens 生成双 Token 并把 Refresh Token ID 写入 Redis 实现单点互踢
func (s *userService) issueTokens(user *model.UserInfo) (*respond.LoginRespond, error) {
	accessToken, err := jwt.GenerateAccessToken(user.Uuid)
	if err != nil {
		zap.L().Error("生成 Access Token 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(user.Uuid)
	if err != nil {
		zap.L().Error("生成 Refresh Token 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	redisKey := "user_token:" + user.Uuid
	if err := s.cache.Set(context.Background(), redisKey, tokenID,
		time.Duration(constants.REFRESH_TOKEN_EXPIRY_HOURS)*time.Hour); err != nil {
		// 不阻塞登录流程，仅记录日志
		zap.L().Error("存储 Token ID 到 Redis 失败", zap.Error(err))
	}

	return &respond.LoginRespond{
		Uuid:         user.Uuid,
		Nickname:     user.Nickname,
		Email:        user.Email,
		Telephone:    user.Telephone,
		Avatar:       user.Avatar,
		CreatedAt:    user.CreatedAt.Format("2006-01-02 15:04:05"),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GetUserInfo 获取单个用户公开资料
func (s *userService) GetUserInfo(userUuid string) (*respond.UserInfoRespond, error) {
	user, err := s.repos.User.FindByUuid(userUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "用户 %s 不存在", userUuid)
		}
		return nil, err
	}
	return &respond.UserInfoRespond{
		Uuid:      user.Uuid,
		Nickname:  user.Nickname,
		Email:     user.Email,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// SearchUsers 按昵称前缀搜索用户，最多返回 20 条
func (s *userService) SearchUsers(prefix string) ([]respond.UserInfoRespond, error) {
	if prefix == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "搜索前缀不能为空")
	}
	users, err := s.repos.User.SearchByNickname(prefix, 20)
	if err != nil {
		return nil, err
	}
	list := make([]respond.UserInfoRespond, 0, len(users))
	for i := range users {
		list = append(list, respond.UserInfoRespond{
			Uuid:      users[i].Uuid,
			Nickname:  users[i].Nickname,
			Email:     users[i].Email,
			Avatar:    users[i].Avatar,
			CreatedAt: users[i].CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return list, nil
}

// UpdateUserInfo 更新用户资料，空字段不更新
func (s *userService) UpdateUserInfo(userUuid string, req request.UpdateUserRequest) error {
	user, err := s.repos.User.FindByUuid(userUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.Newf(errorx.CodeNotFound, "用户 %s 不存在", userUuid)
		}
		return err
	}
	if req.Nickname != "" {
		user.Nickname = req.Nickname
	}
	if req.Avatar != "" {
		// 头像必须指向已登记的文件
		if _, err := s.repos.File.FindByUuid(req.Avatar); err != nil {
			if errorx.IsNotFound(err) {
				return errorx.New(errorx.CodeInvalidParam, "头像文件不存在")
			}
			return err
		}
		user.Avatar = req.Avatar
	}
	return s.repos.User.Update(user)
}

// UpdateDeviceToken 更新设备推送令牌
func (s *userService) UpdateDeviceToken(userUuid, deviceToken string) error {
	return s.repos.Credential.UpdateDeviceToken(userUuid, deviceToken)
}
