package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"nuri_social_server/internal/dao/mysql"
	"nuri_social_server/internal/dto/respond"
	"nuri_social_server/internal/eventbus"
	"nuri_social_server/internal/gateway/subscription"
	"nuri_social_server/internal/model"
	"nuri_social_server/pkg/enum/notification/notification_type_enum"
	"nuri_social_server/pkg/errorx"
)

// recordingPush 记录每次设备推送
type recordingPush struct {
	tokens []string
}

func (r *recordingPush) SendPushNotification(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	r.tokens = append(r.tokens, deviceToken)
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

func seedUser(t *testing.T, repos *mysql.Repositories, nickname string) string {
	t.Helper()
	u := model.UserInfo{
		Uuid:     uuid.NewString(),
		Nickname: nickname,
		Email:    nickname + "@test.local",
	}
	if err := repos.User.Create(&u); err != nil {
		t.Fatalf("seed user %s: %v", nickname, err)
	}
	return u.Uuid
}

func assertCode(t *testing.T, err error, code int) {
	t.Helper()
	if errorx.GetCode(err) != code {
		t.Fatalf("expected code %d, got error %v", code, err)
	}
}

func TestCreateNotification(t *testing.T) {
	repos := newTestRepos(t)
	bus := eventbus.NewChannelBus()
	defer bus.Close()
	svc := NewNotificationService(repos, bus, &recordingPush{})
	alice := seedUser(t, repos, "alice")

	// 订阅共享通知流，事件里带接收人
	sub := bus.Subscribe(subscription.NotificationsTopic)
	defer sub.Close()

	rsp, err := svc.Create(alice, notification_type_enum.FollowRequest, json.RawMessage(`{"followerUuid":"x"}`))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rsp.UserUuid != alice || rsp.Read {
		t.Fatalf("unexpected respond: %+v", rsp)
	}

	select {
	case payload := <-sub.C():
		var event respond.NotificationRespond
		if err := json.Unmarshal(payload, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if event.Uuid != rsp.Uuid || event.UserUuid != alice {
			t.Fatalf("unexpected event: %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatal("notification event not delivered")
	}

	list, err := svc.List(alice)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Uuid != rsp.Uuid {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestCreateNotificationValidation(t *testing.T) {
	repos := newTestRepos(t)
	bus := eventbus.NewChannelBus()
	defer bus.Close()
	svc := NewNotificationService(repos, bus, &recordingPush{})
	alice := seedUser(t, repos, "alice")

	// 未知通知类型
	_, err := svc.Create(alice, "telepathy", nil)
	assertCode(t, err, errorx.CodeInvalidParam)

	// 接收人不存在
	_, err = svc.Create(uuid.NewString(), notification_type_enum.Message, nil)
	assertCode(t, err, errorx.CodeNotFound)

	// 空负载落库为 {}
	rsp, err := svc.Create(alice, notification_type_enum.Message, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if string(rsp.Data) != "{}" {
		t.Fatalf("empty data should become {}, got %s", rsp.Data)
	}
}

func TestMarkAsRead(t *testing.T) {
	repos := newTestRepos(t)
	bus := eventbus.NewChannelBus()
	defer bus.Close()
	svc := NewNotificationService(repos, bus, &recordingPush{})
	alice := seedUser(t, repos, "alice")
	mallory := seedUser(t, repos, "mallory")

	rsp, err := svc.Create(alice, notification_type_enum.Message, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// 他人不能标记
	assertCode(t, svc.MarkAsRead(mallory, rsp.Uuid), errorx.CodeForbidden)

	if err := svc.MarkAsRead(alice, rsp.Uuid); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}
	// 已读重复标记是空操作
	if err := svc.MarkAsRead(alice, rsp.Uuid); err != nil {
		t.Fatalf("repeat MarkAsRead: %v", err)
	}

	list, err := svc.List(alice)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || !list[0].Read {
		t.Fatalf("notification should be read: %+v", list)
	}

	// 不存在的通知
	assertCode(t, svc.MarkAsRead(alice, uuid.NewString()), errorx.CodeNotFound)
}

func TestDevicePush(t *testing.T) {
	repos := newTestRepos(t)
	bus := eventbus.NewChannelBus()
	defer bus.Close()
	pushed := &recordingPush{}
	svc := NewNotificationService(repos, bus, pushed)
	alice := seedUser(t, repos, "alice")
	bob := seedUser(t, repos, "bob")

	// alice 有设备令牌，bob 没有
	if err := repos.Credential.Create(&model.Credential{
		UserUuid: alice, Password: "irrelevant", DeviceToken: "device-token-1",
	}); err != nil {
		t.Fatalf("seed credential: %v", err)
	}

	if _, err := svc.Create(alice, notification_type_enum.Message, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(bob, notification_type_enum.Message, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if len(pushed.tokens) != 1 || pushed.tokens[0] != "device-token-1" {
		t.Fatalf("unexpected pushes: %+v", pushed.tokens)
	}
}
