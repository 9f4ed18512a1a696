package follow

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"nuri_social_server/internal/dao/mysql"
	"nuri_social_server/internal/model"
	"nuri_social_server/pkg/errorx"
)

type nopNotifier struct{}

func (nopNotifier) Notify(userUuid, notifType string, data interface{}) {}

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

func TestFollowFlow(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewFollowService(repos, nopNotifier{})
	alice := seedUser(t, repos, "alice")
	bob := seedUser(t, repos, "bob")

	rsp, err := svc.Follow(alice, bob)
	if err != nil {
		t.Fatalf("Follow: %v", err)
	}
	if rsp.FollowerUuid != alice || rsp.FollowingUuid != bob {
		t.Fatalf("unexpected respond: %+v", rsp)
	}

	// 重复关注
	_, err = svc.Follow(alice, bob)
	assertCode(t, err, errorx.CodeConflict)

	// 单向关系：bob 的粉丝是 alice，alice 没有粉丝
	followers, err := svc.ListFollowers(bob)
	if err != nil {
		t.Fatalf("ListFollowers: %v", err)
	}
	if len(followers) != 1 || followers[0].Uuid != alice {
		t.Fatalf("unexpected followers: %+v", followers)
	}
	followers, err = svc.ListFollowers(alice)
	if err != nil {
		t.Fatalf("ListFollowers: %v", err)
	}
	if len(followers) != 0 {
		t.Fatalf("alice should have no followers, got %+v", followers)
	}

	following, err := svc.ListFollowing(alice)
	if err != nil {
		t.Fatalf("ListFollowing: %v", err)
	}
	if len(following) != 1 || following[0].Uuid != bob {
		t.Fatalf("unexpected following: %+v", following)
	}
}

func TestFollowValidation(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewFollowService(repos, nopNotifier{})
	alice := seedUser(t, repos, "alice")

	_, err := svc.Follow(alice, alice)
	assertCode(t, err, errorx.CodeInvalidParam)

	_, err = svc.Follow(alice, uuid.NewString())
	assertCode(t, err, errorx.CodeNotFound)
}

func TestUnfollow(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewFollowService(repos, nopNotifier{})
	alice := seedUser(t, repos, "alice")
	bob := seedUser(t, repos, "bob")

	if _, err := svc.Follow(alice, bob); err != nil {
		t.Fatalf("Follow: %v", err)
	}
	if err := svc.Unfollow(alice, bob); err != nil {
		t.Fatalf("Unfollow: %v", err)
	}
	assertCode(t, svc.Unfollow(alice, bob), errorx.CodeNotFound)

	// 取关后可以重新关注
	if _, err := svc.Follow(alice, bob); err != nil {
		t.Fatalf("re-follow: %v", err)
	}
}
