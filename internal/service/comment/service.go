// Package comment 实现评论业务逻辑
package comment

import (
	"github.com/google/uuid"

	"nuri_social_server/internal/dao/mysql"
	"nuri_social_server/internal/dto/request"
	"nuri_social_server/internal/dto/respond"
	"nuri_social_server/internal/model"
	"nuri_social_server/pkg/errorx"
)

// commentService 评论业务逻辑实现
type commentService struct {
	repos *mysql.Repositories
}

// NewCommentService 构造函数，注入 Repository 聚合
func NewCommentService(repos *mysql.Repositories) *commentService {
	return &commentService{repos: repos}
}

// CreateComment 发表评论
func (s *commentService) CreateComment(authorUuid string, req request.CreateCommentRequest) (*respond.CommentRespond, error) {
	if _, err := s.repos.Story.FindStoryByUuid(req.StoryUuid); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "动态 %s 不存在", req.StoryUuid)
		}
		return nil, err
	}

	comment := model.Comment{
		Uuid:       uuid.NewString(),
		StoryUuid:  req.StoryUuid,
		AuthorUuid: authorUuid,
		Content:    req.Content,
	}
	if err := s.repos.Story.CreateComment(&comment); err != nil {
		return nil, err
	}
	return s.toRespond(&comment), nil
}

// ListComments 获取动态的全部评论，最早在前
func (s *commentService) ListComments(storyUuid string) ([]respond.CommentRespond, error) {
	if _, err := s.repos.Story.FindStoryByUuid(storyUuid); err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "动态 %s 不存在", storyUuid)
		}
		return nil, err
	}
	comments, err := s.repos.Story.FindCommentsByStory(storyUuid)
	if err != nil {
		return nil, err
	}
	list := make([]respond.CommentRespond, 0, len(comments))
	for i := range comments {
		list = append(list, *s.toRespond(&comments[i]))
	}
	return list, nil
}

// DeleteComment 删除评论
// 评论作者和动态作者都有删除权限
func (s *commentService) DeleteComment(callerUuid, commentUuid string) error {
	comment, err := s.repos.Story.FindCommentByUuid(commentUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.Newf(errorx.CodeNotFound, "评论 %s 不存在", commentUuid)
		}
		return err
	}
	if comment.AuthorUuid != callerUuid {
		story, err := s.repos.Story.FindStoryByUuid(comment.StoryUuid)
		if err != nil {
			return err
		}
		if story.AuthorUuid != callerUuid {
			return errorx.New(errorx.CodeForbidden, "无权删除该评论")
		}
	}
	return s.repos.Story.DeleteComment(commentUuid)
}

// toRespond 把评论模型转换为响应体
func (s *commentService) toRespond(c *model.Comment) *respond.CommentRespond {
	return &respond.CommentRespond{
		Uuid:       c.Uuid,
		StoryUuid:  c.StoryUuid,
		AuthorUuid: c.AuthorUuid,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
