package comment

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
	"nuri_social_server/pkg/errorx"
)

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

func seedStory(t *testing.T, repos *mysql.Repositories, authorUuid string) string {
	t.Helper()
	story := model.Story{Uuid: uuid.NewString(), AuthorUuid: authorUuid, Content: "hello"}
	if err := repos.Story.CreateStory(&story); err != nil {
		t.Fatalf("seed story: %v", err)
	}
	return story.Uuid
}

func assertCode(t *testing.T, err error, code int) {
	t.Helper()
	if errorx.GetCode(err) != code {
		t.Fatalf("expected code %d, got error %v", code, err)
	}
}

func TestCommentFlow(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewCommentService(repos)
	author := uuid.NewString()
	commenter := uuid.NewString()
	storyUuid := seedStory(t, repos, author)

	first, err := svc.CreateComment(commenter, request.CreateCommentRequest{
		StoryUuid: storyUuid, Content: "first",
	})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if _, err := svc.CreateComment(author, request.CreateCommentRequest{
		StoryUuid: storyUuid, Content: "second",
	}); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	// 最早的评论在前
	comments, err := svc.ListComments(storyUuid)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(comments) != 2 || comments[0].Uuid != first.Uuid {
		t.Fatalf("unexpected comments: %+v", comments)
	}

	// 不存在的动态
	_, err = svc.CreateComment(commenter, request.CreateCommentRequest{
		StoryUuid: uuid.NewString(), Content: "ghost",
	})
	assertCode(t, err, errorx.CodeNotFound)

	_, err = svc.ListComments(uuid.NewString())
	assertCode(t, err, errorx.CodeNotFound)
}

func TestDeleteCommentPermissions(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewCommentService(repos)
	author := uuid.NewString()
	commenter := uuid.NewString()
	mallory := uuid.NewString()
	storyUuid := seedStory(t, repos, author)

	comment, err := svc.CreateComment(commenter, request.CreateCommentRequest{
		StoryUuid: storyUuid, Content: "hi",
	})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	// 无关用户不能删
	assertCode(t, svc.DeleteComment(mallory, comment.Uuid), errorx.CodeForbidden)

	// 评论作者可删
	if err := svc.DeleteComment(commenter, comment.Uuid); err != nil {
		t.Fatalf("DeleteComment by commenter: %v", err)
	}

	// 动态作者也可删他人评论
	comment, err = svc.CreateComment(commenter, request.CreateCommentRequest{
		StoryUuid: storyUuid, Content: "hi again",
	})
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if err := svc.DeleteComment(author, comment.Uuid); err != nil {
		t.Fatalf("DeleteComment by story author: %v", err)
	}

	// 已删除的评论
	assertCode(t, svc.DeleteComment(author, comment.Uuid), errorx.CodeNotFound)
}
