package user

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"nuri_social_server/internal/dao/mysql"
	"nuri_social_server/internal/dto/request"
	"nuri_social_server/internal/model"
	"nuri_social_server/pkg/errorx"
	"nuri_social_server/pkg/util/jwt"
)

func TestMain(m *testing.M) {
	jwt.Init("test-secret-test-secret-test-secret", 30, 168)
	os.Exit(m.Run())
}

// memoryCache 测试用的内存缓存
type memoryCache struct {
	data map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string]string)}
}

func (c *memoryCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	return c.data[key], nil
}

func (c *memoryCache) GetOrError(ctx context.Context, key string) (string, error) {
	v, ok := c.data[key]
	if !ok {
		return "", errorx.New(errorx.CodeNotFound, "key not found")
	}
	return v, nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error { return nil }

func (c *memoryCache) AddToSet(ctx context.Context, key string, members ...interface{}) error {
	return nil
}

func (c *memoryCache) GetSetMembers(ctx context.Context, key string) ([]string, error) {
	return nil, nil
}

func (c *memoryCache) RemoveFromSet(ctx context.Context, key string, members ...interface{}) error {
	return nil
}

// recordingSms 记录发送过验证码的手机号
type recordingSms struct {
	sent []string
}

func (r *recordingSms) SendVerificationCode(telephone string) error {
	r.sent = append(r.sent, telephone)
	return nil
}

func newTestRepos(t *testing.T) *mysql.Repositories {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := mysql.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return mysql.NewRepositories(db)
}

func assertCode(t *testing.T, err error, code int) {
	t.Helper()
	if errorx.GetCode(err) != code {
		t.Fatalf("expected code %d, got error %v", code, err)
	}
}

// registerTestUser 塞好验证码并走完注册流程
func registerTestUser(t *testing.T, svc *userService, cache *memoryCache, email, telephone string) string {
	t.Helper()
	cache.data["auth_code_"+telephone] = "123456"
	rsp, err := svc.Register(request.RegisterRequest{
		Email:     email,
		Telephone: telephone,
		Password:  "secret-pass",
		Nickname:  "tester",
		SmsCode:   "123456",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return rsp.Uuid
}

func TestRegisterAndLogin(t *testing.T) {
	repos := newTestRepos(t)
	cache := newMemoryCache()
	svc := NewUserService(repos, cache, &recordingSms{})

	userUuid := registerTestUser(t, svc, cache, "alice@test.local", "13800000001")

	// 验证码是一次性的
	if _, ok := cache.data["auth_code_13800000001"]; ok {
		t.Fatal("sms code should be consumed after register")
	}

	// 密码登录
	rsp, err := svc.Login(request.LoginRequest{Email: "alice@test.local", Password: "secret-pass"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rsp.Uuid != userUuid || rsp.AccessToken == "" || rsp.RefreshToken == "" {
		t.Fatalf("unexpected login respond: %+v", rsp)
	}

	// 错误密码
	_, err = svc.Login(request.LoginRequest{Email: "alice@test.local", Password: "wrong"})
	assertCode(t, err, errorx.CodeInvalidPassword)

	// 未注册邮箱
	_, err = svc.Login(request.LoginRequest{Email: "nobody@test.local", Password: "secret-pass"})
	assertCode(t, err, errorx.CodeUserNotExist)
}

func TestRegisterValidation(t *testing.T) {
	repos := newTestRepos(t)
	cache := newMemoryCache()
	svc := NewUserService(repos, cache, &recordingSms{})

	// 验证码错误
	cache.data["auth_code_13800000001"] = "123456"
	_, err := svc.Register(request.RegisterRequest{
		Email: "alice@test.local", Telephone: "13800000001",
		Password: "secret-pass", Nickname: "alice", SmsCode: "000000",
	})
	assertCode(t, err, errorx.CodeInvalidParam)

	// 邮箱重复
	registerTestUser(t, svc, cache, "alice@test.local", "13800000001")
	cache.data["auth_code_13800000002"] = "123456"
	_, err = svc.Register(request.RegisterRequest{
		Email: "alice@test.local", Telephone: "13800000002",
		Password: "secret-pass", Nickname: "alice2", SmsCode: "123456",
	})
	assertCode(t, err, errorx.CodeUserExist)
}

func TestSmsLogin(t *testing.T) {
	repos := newTestRepos(t)
	cache := newMemoryCache()
	svc := NewUserService(repos, cache, &recordingSms{})

	userUuid := registerTestUser(t, svc, cache, "alice@test.local", "13800000001")

	cache.data["auth_code_13800000001"] = "654321"
	rsp, err := svc.SmsLogin(request.SmsLoginRequest{Telephone: "13800000001", SmsCode: "654321"})
	if err != nil {
		t.Fatalf("SmsLogin: %v", err)
	}
	if rsp.Uuid != userUuid {
		t.Fatalf("unexpected user: %s", rsp.Uuid)
	}

	// 未注册手机号
	cache.data["auth_code_13900000000"] = "654321"
	_, err = svc.SmsLogin(request.SmsLoginRequest{Telephone: "13900000000", SmsCode: "654321"})
	assertCode(t, err, errorx.CodeUserNotExist)
}

func TestRefreshToken(t *testing.T) {
	repos := newTestRepos(t)
	cache := newMemoryCache()
	svc := NewUserService(repos, cache, &recordingSms{})

	registerTestUser(t, svc, cache, "alice@test.local", "13800000001")
	login, err := svc.Login(request.LoginRequest{Email: "alice@test.local", Password: "secret-pass"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	refreshed, err := svc.RefreshToken(login.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Fatalf("unexpected respond: %+v", refreshed)
	}

	// 换新后旧 Refresh Token 失效
	_, err = svc.RefreshToken(login.RefreshToken)
	assertCode(t, err, errorx.CodeUnauthorized)

	// 无效令牌
	_, err = svc.RefreshToken("not-a-token")
	assertCode(t, err, errorx.CodeUnauthorized)

	// 服务端记录被清除（如登出）后，令牌本身合法也要求重新登录
	cache.Delete(context.Background(), "user_token:"+refreshed.Uuid)
	_, err = svc.RefreshToken(refreshed.RefreshToken)
	assertCode(t, err, errorx.CodeUnauthorized)
}

func TestSearchUsers(t *testing.T) {
	repos := newTestRepos(t)
	cache := newMemoryCache()
	svc := NewUserService(repos, cache, &recordingSms{})

	for _, nickname := range []string{"张三", "张四", "李五"} {
		u := model.UserInfo{
			Uuid:     uuid.NewString(),
			Nickname: nickname,
			Email:    uuid.NewString() + "@test.local",
		}
		if err := repos.User.Create(&u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	list, err := svc.SearchUsers("张")
	if err != nil {
		t.Fatalf("SearchUsers: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(list))
	}

	_, err = svc.SearchUsers("")
	assertCode(t, err, errorx.CodeInvalidParam)
}

func TestUpdateUserInfo(t *testing.T) {
	repos := newTestRepos(t)
	cache := newMemoryCache()
	svc := NewUserService(repos, cache, &recordingSms{})

	userUuid := registerTestUser(t, svc, cache, "alice@test.local", "13800000001")

	// 头像必须指向已登记的文件
	err := svc.UpdateUserInfo(userUuid, request.UpdateUserRequest{Avatar: uuid.NewString()})
	assertCode(t, err, errorx.CodeInvalidParam)

	avatar := model.FileRecord{Uuid: uuid.NewString(), Key: "avatars/a.png"}
	if err := repos.File.Create(&avatar); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	if err := svc.UpdateUserInfo(userUuid, request.UpdateUserRequest{
		Nickname: "new-name", Avatar: avatar.Uuid,
	}); err != nil {
		t.Fatalf("UpdateUserInfo: %v", err)
	}

	info, err := svc.GetUserInfo(userUuid)
	if err != nil {
		t.Fatalf("GetUserInfo: %v", err)
	}
	if info.Nickname != "new-name" || info.Avatar != avatar.Uuid {
		t.Fatalf("update not applied: %+v", info)
	}
}
