package sms

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dysmsapi20170525 "github.com/alibabacloud-go/dysmsapi-20170525/v4/client"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
	"go.uber.org/zap"

	"nuri_social_server/internal/config"
	myredis "nuri_social_server/internal/dao/redis"
	"nuri_social_server/pkg/errorx"
	"nuri_social_server/pkg/util/random"
)

// localSmsService 本地 Mock 实现，只写缓存不外发短信
type localSmsService struct {
	cache myredis.CacheService
}

func (s *localSmsService) SendVerificationCode(telephone string) error {
	key := "auth_code_" + telephone
	code, err := s.cache.Get(context.Background(), key)
	if err != nil {
		zap.L().Error("缓存频率检查异常", zap.Error(err), zap.String("phone", telephone))
		return errorx.ErrServerBusy
	}
	if code != "" {
		return errorx.New(errorx.CodeInvalidParam, "目前还不能发送验证码，请稍后重试或输入已发送的验证码")
	}

	code = strconv.Itoa(random.GetRandomInt(6))
	fmt.Printf("【MockSMS】手机号: %s, 验证码: %s\n", telephone, code)

	if err := s.cache.Set(context.Background(), key, code, time.Minute); err != nil {
		zap.L().Error("缓存写入验证码失败", zap.Error(err))
		return errorx.ErrServerBusy
	}

	return nil
}

func shouldUseMock(auth config.AuthCodeConfig) bool {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv("NURI_SMS_MODE")))
	if mode == "mock" || mode == "local" || mode == "test" {
		return true
	}
	// configs/config.toml 默认是占位字符串；没配真实 AK 时默认走 mock，便于本机跑通注册/短信登录链路
	ak := strings.ToLower(strings.TrimSpace(auth.AccessKeyID))
	ask := strings.ToLower(strings.TrimSpace(auth.AccessKeySecret))
	if ak == "" || ask == "" {
		return true
	}
	if strings.Contains(ak, "your accesskey") || strings.Contains(ask, "your accesskey") {
		return true
	}
	return false
}

// aliyunSmsService 阿里云短信服务实现
type aliyunSmsService struct {
	client *dysmsapi20170525.Client
	conf   config.AuthCodeConfig
	cache  myredis.CacheService // 依赖抽象接口而非具体 Redis 实现
}

// Init 初始化阿里云 SMS Client 并创建服务实例
// cacheService: 缓存服务接口实例（用于频率限制和验证码存储）
func Init(authCfg config.AuthCodeConfig, cacheService myredis.CacheService) (SmsService, error) {
	if shouldUseMock(authCfg) {
		zap.L().Warn("SMS Service 使用本地 Mock 模式（仅写入 Redis，不调用第三方短信）")
		return &localSmsService{cache: cacheService}, nil
	}

	conf := &openapi.Config{
		AccessKeyId:     tea.String(authCfg.AccessKeyID),
		AccessKeySecret: tea.String(authCfg.AccessKeySecret),
	}
	conf.Endpoint = tea.String("dysmsapi.aliyuncs.com")
	client, err := dysmsapi20170525.NewClient(conf)
	if err != nil {
		zap.L().Error("Aliyun SMS Client Init Failed", zap.Error(err))
		return nil, err
	}

	return &aliyunSmsService{client: client, conf: authCfg, cache: cacheService}, nil
}

// SendVerificationCode 发送验证码核心逻辑
// 包含：频率限制检查、验证码生成、缓存预存、阿里云 API 调用以及失败回滚
func (s *aliyunSmsService) SendVerificationCode(telephone string) error {
	if s.client == nil {
		zap.L().Error("短信服务调用失败：smsClient 未初始化")
		return errorx.New(errorx.CodeServerBusy, "短信服务未初始化")
	}

	// 频率限制：通过缓存接口查询该手机号是否已有未过期的验证码
	key := "auth_code_" + telephone
	code, err := s.cache.Get(context.Background(), key)
	if err != nil {
		zap.L().Error("缓存频率检查异常", zap.Error(err), zap.String("phone", telephone))
		return errorx.ErrServerBusy
	}
	if code != "" {
		return errorx.New(errorx.CodeInvalidParam, "目前还不能发送验证码，请稍后重试或输入已发送的验证码")
	}

	code = strconv.Itoa(random.GetRandomInt(6))

	// 预存缓存，1 分钟有效。先占位后发送，防止高并发下绕过频率限制
	if err := s.cache.Set(context.Background(), key, code, time.Minute); err != nil {
		zap.L().Error("缓存写入验证码失败", zap.Error(err))
		return errorx.ErrServerBusy
	}

	// 签名与模板兜底：未配置时使用阿里云提供的测试模板
	signName := s.conf.SignName
	if signName == "" {
		signName = "阿里云短信测试"
	}
	templateCode := s.conf.TemplateCode
	if templateCode == "" {
		templateCode = "SMS_154950909"
	}

	sendSmsRequest := &dysmsapi20170525.SendSmsRequest{
		SignName:     tea.String(signName),
		TemplateCode: tea.String(templateCode),
		PhoneNumbers: tea.String(telephone),
		// 对应模板中的变量 ${code}
		TemplateParam: tea.String("{\"code\":\"" + code + "\"}"),
	}

	runtime := &util.RuntimeOptions{}
	rsp, err := s.client.SendSmsWithOptions(sendSmsRequest, runtime)
	if err != nil {
		zap.L().Error("调用阿里云短信接口发生系统级错误", zap.Error(err))
		// 回滚：发送失败必须删除占位 Key，否则用户 1 分钟内无法重试
		_ = s.cache.Delete(context.Background(), key)
		return errorx.ErrServerBusy
	}

	// 即使 err 为 nil，也需要看 rsp.Body.Code 是否为 "OK"
	zap.L().Info("短信发送接口响应", zap.String("response", *util.ToJSONString(rsp)))

	return nil
}
