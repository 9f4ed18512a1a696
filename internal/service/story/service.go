// Package story 实现动态业务逻辑
// 发布动态后向全部粉丝扇出 new_post 通知
package story

import (
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nuri_social_server/internal/dao/mysql"
	"nuri_social_server/internal/dto/request"
	"nuri_social_server/internal/dto/respond"
	"nuri_social_server/internal/model"
	"nuri_social_server/pkg/constants"
	"nuri_social_server/pkg/enum/notification/notification_type_enum"
	"nuri_social_server/pkg/errorx"
)

// Notifier 通知创建入口，由 notification Service 实现
type Notifier interface {
	Notify(userUuid, notifType string, data interface{})
}

// storyService 动态业务逻辑实现
type storyService struct {
	repos    *mysql.Repositories
	notifier Notifier
}

// NewStoryService 构造函数，注入 Repository 聚合与通知入口
func NewStoryService(repos *mysql.Repositories, notifier Notifier) *storyService {
	return &storyService{repos: repos, notifier: notifier}
}

// CreateStory 发布动态
// 正文与附件不能同时为空；附件必须指向已登记的文件
func (s *storyService) CreateStory(authorUuid string, req request.CreateStoryRequest) (*respond.StoryRespond, error) {
	if req.Content == "" && len(req.FileUuids) == 0 {
		return nil, errorx.New(errorx.CodeInvalidParam, "动态正文与附件不能同时为空")
	}
	if len(req.FileUuids) > 0 {
		files, err := s.repos.File.FindByUuids(req.FileUuids)
		if err != nil {
			return nil, err
		}
		if len(files) != len(req.FileUuids) {
			return nil, errorx.New(errorx.CodeInvalidParam, "部分附件文件不存在")
		}
	}

	fileRefs, err := json.Marshal(req.FileUuids)
	if err != nil {
		zap.L().Error("序列化附件列表失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	story := model.Story{
		Uuid:       uuid.NewString(),
		AuthorUuid: authorUuid,
		Content:    req.Content,
		FileRefs:   string(fileRefs),
	}
	if err := s.repos.Story.CreateStory(&story); err != nil {
		return nil, err
	}

	// 向全部粉丝扇出 new_post 通知，失败只记日志
	followers, err := s.repos.Social.FindFollowersOf(authorUuid)
	if err != nil {
		zap.L().Error("查询粉丝失败，动态通知未扇出", zap.Error(err), zap.String("story", story.Uuid))
	} else {
		for _, f := range followers {
			s.notifier.Notify(f.FollowerUuid, notification_type_enum.NewPost, map[string]string{
				"storyUuid":  story.Uuid,
				"authorUuid": authorUuid,
			})
		}
	}

	return s.toRespond(&story), nil
}

// ListStories 按创建时间倒序分页查询作者动态
// 多取一行探测是否还有下一页
func (s *storyService) ListStories(authorUuid string, limit, offset int) (*respond.StoryPageRespond, error) {
	if limit <= 0 {
		limit = constants.MESSAGE_PAGE_SIZE
	}
	if offset < 0 {
		offset = 0
	}

	stories, err := s.repos.Story.FindPageByAuthor(authorUuid, limit+1, offset)
	if err != nil {
		return nil, err
	}

	page := &respond.StoryPageRespond{HasNextPage: false, NextOffset: nil}
	if len(stories) > limit {
		stories = stories[:limit]
		next := offset + limit
		page.HasNextPage = true
		page.NextOffset = &next
	}
	page.Stories = make([]respond.StoryRespond, 0, len(stories))
	for i := range stories {
		page.Stories = append(page.Stories, *s.toRespond(&stories[i]))
	}
	return page, nil
}

// GetStory 查询单条动态
func (s *storyService) GetStory(storyUuid string) (*respond.StoryRespond, error) {
	story, err := s.repos.Story.FindStoryByUuid(storyUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "动态 %s 不存在", storyUuid)
		}
		return nil, err
	}
	return s.toRespond(story), nil
}

// DeleteStory 删除动态，仅作者本人可删，评论随动态一并清理
func (s *storyService) DeleteStory(callerUuid, storyUuid string) error {
	story, err := s.repos.Story.FindStoryByUuid(storyUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.Newf(errorx.CodeNotFound, "动态 %s 不存在", storyUuid)
		}
		return err
	}
	if story.AuthorUuid != callerUuid {
		return errorx.New(errorx.CodeForbidden, "只有作者可以删除动态")
	}
	return s.repos.Story.DeleteStoryCascade(storyUuid)
}

// toRespond 把动态模型转换为响应体
func (s *storyService) toRespond(story *model.Story) *respond.StoryRespond {
	fileUuids := []string{}
	if story.FileRefs != "" {
		if err := json.Unmarshal([]byte(story.FileRefs), &fileUuids); err != nil {
			zap.L().Warn("解析附件列表失败", zap.Error(err), zap.String("story", story.Uuid))
		}
	}
	return &respond.StoryRespond{
		Uuid:       story.Uuid,
		AuthorUuid: story.AuthorUuid,
		Content:    story.Content,
		FileUuids:  fileUuids,
		CreatedAt:  story.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
