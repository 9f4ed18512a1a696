package story

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"nuri_social_server/internal/dao/mysql"
	"nuri_social_server/internal/dto/request"
	"nuri_social_server/internal/model"
	"nuri_social_server/pkg/enum/notification/notification_type_enum"
	"nuri_social_server/pkg/errorx"
)

// recordingNotifier 记录每次通知调用
type recordingNotifier struct {
	calls []notifyCall
}

type notifyCall struct {
	userUuid  string
	notifType string
}

func (r *recordingNotifier) Notify(userUuid, notifType string, data interface{}) {
	r.calls = append(r.calls, notifyCall{userUuid: userUuid, notifType: notifType})
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

func TestCreateStoryFansOutToFollowers(t *testing.T) {
	repos := newTestRepos(t)
	notifier := &recordingNotifier{}
	svc := NewStoryService(repos, notifier)
	alice := seedUser(t, repos, "alice")
	bob := seedUser(t, repos, "bob")
	carol := seedUser(t, repos, "carol")

	// bob 和 carol 关注 alice
	for _, follower := range []string{bob, carol} {
		if err := repos.Social.CreateFollower(&model.Follower{
			FollowerUuid: follower, FollowingUuid: alice,
		}); err != nil {
			t.Fatalf("seed follower: %v", err)
		}
	}

	rsp, err := svc.CreateStory(alice, request.CreateStoryRequest{Content: "今天天气不错"})
	if err != nil {
		t.Fatalf("CreateStory: %v", err)
	}
	if rsp.AuthorUuid != alice || len(rsp.FileUuids) != 0 {
		t.Fatalf("unexpected respond: %+v", rsp)
	}

	if len(notifier.calls) != 2 {
		t.Fatalf("expected 2 fan-out notifications, got %d", len(notifier.calls))
	}
	for _, call := range notifier.calls {
		if call.notifType != notification_type_enum.NewPost {
			t.Fatalf("unexpected notification type %s", call.notifType)
		}
	}
}

func TestCreateStoryValidation(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewStoryService(repos, &recordingNotifier{})
	alice := seedUser(t, repos, "alice")

	// 正文与附件同时为空
	_, err := svc.CreateStory(alice, request.CreateStoryRequest{})
	assertCode(t, err, errorx.CodeInvalidParam)

	// 附件未登记
	_, err = svc.CreateStory(alice, request.CreateStoryRequest{FileUuids: []string{uuid.NewString()}})
	assertCode(t, err, errorx.CodeInvalidParam)
}

func TestCreateStoryWithFiles(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewStoryService(repos, &recordingNotifier{})
	alice := seedUser(t, repos, "alice")

	file := model.FileRecord{Uuid: uuid.NewString(), Key: "files/photo.jpg"}
	if err := repos.File.Create(&file); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	rsp, err := svc.CreateStory(alice, request.CreateStoryRequest{FileUuids: []string{file.Uuid}})
	if err != nil {
		t.Fatalf("CreateStory: %v", err)
	}
	if len(rsp.FileUuids) != 1 || rsp.FileUuids[0] != file.Uuid {
		t.Fatalf("unexpected file refs: %+v", rsp.FileUuids)
	}
}

func TestListStoriesPagination(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewStoryService(repos, &recordingNotifier{})
	alice := seedUser(t, repos, "alice")

	for i := 1; i <= 3; i++ {
		if _, err := svc.CreateStory(alice, request.CreateStoryRequest{
			Content: fmt.Sprintf("story-%d", i),
		}); err != nil {
			t.Fatalf("CreateStory: %v", err)
		}
	}

	page, err := svc.ListStories(alice, 2, 0)
	if err != nil {
		t.Fatalf("ListStories: %v", err)
	}
	if len(page.Stories) != 2 {
		t.Fatalf("expected 2 stories, got %d", len(page.Stories))
	}
	if page.Stories[0].Content != "story-3" {
		t.Fatalf("newest story should come first, got %s", page.Stories[0].Content)
	}
	if !page.HasNextPage || page.NextOffset == nil || *page.NextOffset != 2 {
		t.Fatalf("unexpected page info: hasNext=%v nextOffset=%v", page.HasNextPage, page.NextOffset)
	}

	page, err = svc.ListStories(alice, 2, *page.NextOffset)
	if err != nil {
		t.Fatalf("ListStories: %v", err)
	}
	if len(page.Stories) != 1 || page.HasNextPage || page.NextOffset != nil {
		t.Fatalf("unexpected second page: %+v", page)
	}
}

func TestGetStory(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewStoryService(repos, &recordingNotifier{})
	alice := seedUser(t, repos, "alice")

	created, err := svc.CreateStory(alice, request.CreateStoryRequest{Content: "今天天气不错"})
	if err != nil {
		t.Fatalf("CreateStory: %v", err)
	}

	got, err := svc.GetStory(created.Uuid)
	if err != nil {
		t.Fatalf("GetStory: %v", err)
	}
	if got.Uuid != created.Uuid || got.Content != "今天天气不错" || got.AuthorUuid != alice {
		t.Fatalf("GetStory 返回内容不符: %+v", got)
	}

	_, err = svc.GetStory("no-such-story")
	assertCode(t, err, errorx.CodeNotFound)
}

func TestDeleteStory(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewStoryService(repos, &recordingNotifier{})
	alice := seedUser(t, repos, "alice")
	mallory := seedUser(t, repos, "mallory")

	rsp, err := svc.CreateStory(alice, request.CreateStoryRequest{Content: "hello"})
	if err != nil {
		t.Fatalf("CreateStory: %v", err)
	}

	// 评论随动态一并删除
	if err := repos.Story.CreateComment(&model.Comment{
		Uuid: uuid.NewString(), StoryUuid: rsp.Uuid, AuthorUuid: mallory, Content: "nice",
	}); err != nil {
		t.Fatalf("seed comment: %v", err)
	}

	// 只有作者可删
	assertCode(t, svc.DeleteStory(mallory, rsp.Uuid), errorx.CodeForbidden)

	if err := svc.DeleteStory(alice, rsp.Uuid); err != nil {
		t.Fatalf("DeleteStory: %v", err)
	}
	if _, err := repos.Story.FindStoryByUuid(rsp.Uuid); !errorx.IsNotFound(err) {
		t.Fatalf("story should be gone, got %v", err)
	}
	comments, err := repos.Story.FindCommentsByStory(rsp.Uuid)
	if err != nil {
		t.Fatalf("FindCommentsByStory: %v", err)
	}
	if len(comments) != 0 {
		t.Fatalf("comments should be cascaded, got %d", len(comments))
	}

	// 已删除的动态
	assertCode(t, svc.DeleteStory(alice, rsp.Uuid), errorx.CodeNotFound)
}
