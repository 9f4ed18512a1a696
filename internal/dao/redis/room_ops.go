// 本文件提供房间维度的缓存操作
// 房间成员集合以 Redis Set 缓存，读路径未命中时由调用方回填，
// 成员变更走异步任务更新，写路径不阻塞业务事务
package redis

import (
	"context"

	"go.uber.org/zap"
)

// roomKeyPrefix 房间维度缓存键的统一前缀
const roomKeyPrefix = "room_"

// RoomMembersKey 房间成员集合的缓存键
func RoomMembersKey(roomUuid string) string {
	return roomKeyPrefix + roomUuid + "_members"
}

// RoomScopePattern 房间全部缓存键的匹配模式，房间解散时整体清理
func RoomScopePattern(roomUuid string) string {
	return roomKeyPrefix + roomUuid + "_*"
}

// RoomMemberCache 房间成员集合缓存
// 读多写少：消息扇出每条都要查成员，成员变更相对低频
type RoomMemberCache struct {
	cache AsyncCacheService
}

// NewRoomMemberCache 创建房间成员缓存实例
func NewRoomMemberCache(cache AsyncCacheService) *RoomMemberCache {
	return &RoomMemberCache{cache: cache}
}

// Members 读取缓存的成员集合，未命中返回空切片
func (c *RoomMemberCache) Members(ctx context.Context, roomUuid string) ([]string, error) {
	return c.cache.GetSetMembers(ctx, RoomMembersKey(roomUuid))
}

// Fill 异步回填成员集合
func (c *RoomMemberCache) Fill(roomUuid string, memberUuids []string) {
	if len(memberUuids) == 0 {
		return
	}
	members := make([]interface{}, 0, len(memberUuids))
	for _, m := range memberUuids {
		members = append(members, m)
	}
	c.cache.SubmitTask(func() {
		if err := c.cache.AddToSet(context.Background(), RoomMembersKey(roomUuid), members...); err != nil {
			zap.L().Error("回填房间成员缓存失败", zap.Error(err), zap.String("room", roomUuid))
		}
	})
}

// RemoveMember 成员退出后异步从集合剔除
// 剔除失败时整键删除，宁可缓存未命中也不能留下脏成员
func (c *RoomMemberCache) RemoveMember(roomUuid, userUuid string) {
	c.cache.SubmitTask(func() {
		key := RoomMembersKey(roomUuid)
		if err := c.cache.RemoveFromSet(context.Background(), key, userUuid); err != nil {
			zap.L().Error("剔除房间成员缓存失败，改为整键删除", zap.Error(err), zap.String("room", roomUuid))
			if err := c.cache.Delete(context.Background(), key); err != nil {
				zap.L().Error("删除房间成员缓存失败", zap.Error(err), zap.String("room", roomUuid))
			}
		}
	})
}

// Dissolve 房间解散后按前缀清理该房间的全部缓存键
func (c *RoomMemberCache) Dissolve(roomUuid string) {
	c.cache.SubmitTask(func() {
		if err := c.cache.DeleteByPattern(context.Background(), RoomScopePattern(roomUuid)); err != nil {
			zap.L().Error("清理房间缓存失败", zap.Error(err), zap.String("room", roomUuid))
		}
	})
}
