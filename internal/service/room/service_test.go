package room

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"nuri_social_server/internal/dao/mysql"
	myredis "nuri_social_server/internal/dao/redis"
	"nuri_social_server/internal/dto/request"
	"nuri_social_server/internal/model"
	"nuri_social_server/pkg/errorx"
)

// nopNotifier 测试用的空通知入口
type nopNotifier struct{}

func (nopNotifier) Notify(userUuid, notifType string, data interface{}) {}

// memoryAsyncCache 测试用的内存缓存，异步任务同步执行以便断言
type memoryAsyncCache struct {
	mu   sync.Mutex
	kv   map[string]string
	sets map[string]map[string]struct{}
}

func newMemoryAsyncCache() *memoryAsyncCache {
	return &memoryAsyncCache{
		kv:   make(map[string]string),
		sets: make(map[string]map[string]struct{}),
	}
}

func (c *memoryAsyncCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.kv[key] = value
	return nil
}

func (c *memoryAsyncCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv[key], nil
}

func (c *memoryAsyncCache) GetOrError(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.kv[key]
	if !ok {
		return "", errorx.New(errorx.CodeNotFound, "key not found")
	}
	return v, nil
}

func (c *memoryAsyncCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.kv, key)
	delete(c.sets, key)
	return nil
}

func (c *memoryAsyncCache) DeleteByPattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.kv {
		if strings.HasPrefix(key, prefix) {
			delete(c.kv, key)
		}
	}
	for key := range c.sets {
		if strings.HasPrefix(key, prefix) {
			delete(c.sets, key)
		}
	}
	return nil
}

func (c *memoryAsyncCache) AddToSet(ctx context.Context, key string, members ...interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sets[key] == nil {
		c.sets[key] = make(map[string]struct{})
	}
	for _, m := range members {
		c.sets[key][fmt.Sprint(m)] = struct{}{}
	}
	return nil
}

func (c *memoryAsyncCache) GetSetMembers(ctx context.Context, key string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	members := make([]string, 0, len(c.sets[key]))
	for m := range c.sets[key] {
		members = append(members, m)
	}
	return members, nil
}

func (c *memoryAsyncCache) RemoveFromSet(ctx context.Context, key string, members ...interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range members {
		delete(c.sets[key], fmt.Sprint(m))
	}
	return nil
}

func (c *memoryAsyncCache) SubmitTask(action func()) {
	action()
}

func newMemberCache() *myredis.RoomMemberCache {
	return myredis.NewRoomMemberCache(newMemoryAsyncCache())
}

// newTestRepos 基于内存 sqlite 构建 Repository 聚合
// 每个测试用独立命名的共享内存库，互不干扰
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

// seedUser 插入一个测试用户并返回其 uuid
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

// assertCode 断言错误携带指定业务码
func assertCode(t *testing.T, err error, code int) {
	t.Helper()
	if errorx.GetCode(err) != code {
		t.Fatalf("expected code %d, got error %v", code, err)
	}
}

func TestCreateRoom(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewRoomService(repos, nopNotifier{}, newMemberCache())
	alice := seedUser(t, repos, "alice")
	bob := seedUser(t, repos, "bob")
	carol := seedUser(t, repos, "carol")

	// 成员列表里重复带上创建者，应被去重
	room, err := svc.CreateRoom(alice, request.CreateRoomRequest{MemberUuids: []string{bob, carol, alice, bob}})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if len(room.MemberUuids) != 3 {
		t.Fatalf("expected 3 members, got %d", len(room.MemberUuids))
	}
	ok, err := repos.Room.IsMember(room.Uuid, alice)
	if err != nil || !ok {
		t.Fatalf("creator should be member, ok=%v err=%v", ok, err)
	}
}

func TestCreateRoomTooFewMembers(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewRoomService(repos, nopNotifier{}, newMemberCache())
	alice := seedUser(t, repos, "alice")

	// 去重后只剩创建者一人
	_, err := svc.CreateRoom(alice, request.CreateRoomRequest{MemberUuids: []string{alice, alice}})
	assertCode(t, err, errorx.CodeInvalidParam)
}

func TestCreateRoomUnknownMember(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewRoomService(repos, nopNotifier{}, newMemberCache())
	alice := seedUser(t, repos, "alice")

	_, err := svc.CreateRoom(alice, request.CreateRoomRequest{MemberUuids: []string{uuid.NewString()}})
	assertCode(t, err, errorx.CodeNotFound)
}

func TestChatRequestFlow(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewRoomService(repos, nopNotifier{}, newMemberCache())
	alice := seedUser(t, repos, "alice")
	bob := seedUser(t, repos, "bob")

	result, err := svc.SendChatRequest(alice, bob)
	if err != nil {
		t.Fatalf("SendChatRequest: %v", err)
	}
	if result.Accepted {
		t.Fatal("first request should stay pending")
	}

	// 重复请求
	_, err = svc.SendChatRequest(alice, bob)
	assertCode(t, err, errorx.CodeConflict)

	pending, err := svc.ListPendingChatRequests(bob)
	if err != nil {
		t.Fatalf("ListPendingChatRequests: %v", err)
	}
	if len(pending) != 1 || pending[0].RequesterUuid != alice {
		t.Fatalf("unexpected pending list: %+v", pending)
	}

	room, err := svc.AcceptChatRequest(bob, alice)
	if err != nil {
		t.Fatalf("AcceptChatRequest: %v", err)
	}
	if len(room.MemberUuids) != 2 {
		t.Fatalf("direct room should have 2 members, got %d", len(room.MemberUuids))
	}

	// 接受后请求应被清理
	pending, err = svc.ListPendingChatRequests(bob)
	if err != nil {
		t.Fatalf("ListPendingChatRequests: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending requests should be cleared, got %d", len(pending))
	}

	// 双人房间已存在，再发请求直接 Conflict
	_, err = svc.SendChatRequest(alice, bob)
	assertCode(t, err, errorx.CodeConflict)
}

func TestChatRequestSymmetricCollapse(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewRoomService(repos, nopNotifier{}, newMemberCache())
	alice := seedUser(t, repos, "alice")
	bob := seedUser(t, repos, "bob")

	if _, err := svc.SendChatRequest(alice, bob); err != nil {
		t.Fatalf("SendChatRequest: %v", err)
	}

	// 对向请求折叠为直接建房
	result, err := svc.SendChatRequest(bob, alice)
	if err != nil {
		t.Fatalf("reverse SendChatRequest: %v", err)
	}
	if !result.Accepted || result.Room == nil {
		t.Fatalf("expected collapse into room, got %+v", result)
	}

	// 两个方向的请求都应被清理
	for _, user := range []string{alice, bob} {
		pending, err := svc.ListPendingChatRequests(user)
		if err != nil {
			t.Fatalf("ListPendingChatRequests: %v", err)
		}
		if len(pending) != 0 {
			t.Fatalf("pending requests should be cleared after collapse, got %d", len(pending))
		}
	}

	roomUuid, err := repos.Room.FindDirectRoomUuid(alice, bob)
	if err != nil {
		t.Fatalf("FindDirectRoomUuid: %v", err)
	}
	if roomUuid != result.Room.Uuid {
		t.Fatalf("direct room mismatch: %s vs %s", roomUuid, result.Room.Uuid)
	}
}

func TestSendChatRequestToSelf(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewRoomService(repos, nopNotifier{}, newMemberCache())
	alice := seedUser(t, repos, "alice")

	_, err := svc.SendChatRequest(alice, alice)
	assertCode(t, err, errorx.CodeInvalidParam)
}

func TestRejectChatRequest(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewRoomService(repos, nopNotifier{}, newMemberCache())
	alice := seedUser(t, repos, "alice")
	bob := seedUser(t, repos, "bob")

	if _, err := svc.SendChatRequest(alice, bob); err != nil {
		t.Fatalf("SendChatRequest: %v", err)
	}
	if err := svc.RejectChatRequest(bob, alice); err != nil {
		t.Fatalf("RejectChatRequest: %v", err)
	}
	// 再次拒绝应报不存在
	assertCode(t, svc.RejectChatRequest(bob, alice), errorx.CodeNotFound)
	// 拒绝后不建房
	roomUuid, err := repos.Room.FindDirectRoomUuid(alice, bob)
	if err != nil {
		t.Fatalf("FindDirectRoomUuid: %v", err)
	}
	if roomUuid != "" {
		t.Fatalf("no room should exist after reject, got %s", roomUuid)
	}
}

func TestLeaveRoom(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewRoomService(repos, nopNotifier{}, newMemberCache())
	alice := seedUser(t, repos, "alice")
	bob := seedUser(t, repos, "bob")
	carol := seedUser(t, repos, "carol")

	room, err := svc.CreateRoom(alice, request.CreateRoomRequest{MemberUuids: []string{bob, carol}})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	// 三人房间退出一人，房间保留
	if err := svc.LeaveRoom(carol, room.Uuid); err != nil {
		t.Fatalf("LeaveRoom: %v", err)
	}
	count, err := repos.Room.CountMembers(room.Uuid)
	if err != nil || count != 2 {
		t.Fatalf("expected 2 members left, count=%d err=%v", count, err)
	}

	// 非成员退出
	assertCode(t, svc.LeaveRoom(carol, room.Uuid), errorx.CodeNotFound)

	// 再退一人只剩一人，房间解散
	if err := svc.LeaveRoom(bob, room.Uuid); err != nil {
		t.Fatalf("LeaveRoom: %v", err)
	}
	if _, err := repos.Room.FindRoomByUuid(room.Uuid); !errorx.IsNotFound(err) {
		t.Fatalf("room should be dissolved, got %v", err)
	}

	// 解散后的房间
	assertCode(t, svc.LeaveRoom(alice, room.Uuid), errorx.CodeNotFound)
}

func TestRoomMemberCacheMaintenance(t *testing.T) {
	repos := newTestRepos(t)
	cache := newMemoryAsyncCache()
	svc := NewRoomService(repos, nopNotifier{}, myredis.NewRoomMemberCache(cache))
	alice := seedUser(t, repos, "alice")
	bob := seedUser(t, repos, "bob")
	carol := seedUser(t, repos, "carol")

	room, err := svc.CreateRoom(alice, request.CreateRoomRequest{MemberUuids: []string{bob, carol}})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	key := myredis.RoomMembersKey(room.Uuid)

	// 建房即预热成员集合
	members, err := cache.GetSetMembers(context.Background(), key)
	if err != nil || len(members) != 3 {
		t.Fatalf("成员集合未预热: members=%v err=%v", members, err)
	}

	// 退出房间后从集合剔除
	if err := svc.LeaveRoom(carol, room.Uuid); err != nil {
		t.Fatalf("LeaveRoom: %v", err)
	}
	members, err = cache.GetSetMembers(context.Background(), key)
	if err != nil || len(members) != 2 {
		t.Fatalf("退出后成员集合未剔除: members=%v err=%v", members, err)
	}
	for _, m := range members {
		if m == carol {
			t.Fatalf("缓存中残留已退出成员")
		}
	}

	// 房间解散后按前缀整体清理
	if err := svc.LeaveRoom(bob, room.Uuid); err != nil {
		t.Fatalf("LeaveRoom: %v", err)
	}
	members, err = cache.GetSetMembers(context.Background(), key)
	if err != nil || len(members) != 0 {
		t.Fatalf("解散后成员集合未清理: members=%v err=%v", members, err)
	}
}

func TestListMembersRequiresMembership(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewRoomService(repos, nopNotifier{}, newMemberCache())
	alice := seedUser(t, repos, "alice")
	bob := seedUser(t, repos, "bob")
	mallory := seedUser(t, repos, "mallory")

	room, err := svc.CreateRoom(alice, request.CreateRoomRequest{MemberUuids: []string{bob}})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	_, err = svc.ListMembers(mallory, room.Uuid)
	assertCode(t, err, errorx.CodeForbidden)

	members, err := svc.ListMembers(alice, room.Uuid)
	if err != nil {
		t.Fatalf("ListMembers: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
}

func TestFindOrCreateDirectRoom(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewRoomService(repos, nopNotifier{}, newMemberCache())
	alice := seedUser(t, repos, "alice")
	bob := seedUser(t, repos, "bob")

	room, err := svc.FindOrCreateDirectRoom(alice, bob)
	if err != nil {
		t.Fatalf("FindOrCreateDirectRoom: %v", err)
	}
	if len(room.MemberUuids) != 2 {
		t.Fatalf("direct room should have 2 members, got %d", len(room.MemberUuids))
	}

	// 第二次从任一方向调用都复用同一个房间
	again, err := svc.FindOrCreateDirectRoom(bob, alice)
	if err != nil {
		t.Fatalf("FindOrCreateDirectRoom: %v", err)
	}
	if again.Uuid != room.Uuid {
		t.Fatalf("expected same room, got %s vs %s", again.Uuid, room.Uuid)
	}

	_, err = svc.FindOrCreateDirectRoom(alice, alice)
	assertCode(t, err, errorx.CodeInvalidParam)

	_, err = svc.FindOrCreateDirectRoom(alice, uuid.NewString())
	assertCode(t, err, errorx.CodeNotFound)
}

func TestListRooms(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewRoomService(repos, nopNotifier{}, newMemberCache())
	alice := seedUser(t, repos, "alice")
	bob := seedUser(t, repos, "bob")
	carol := seedUser(t, repos, "carol")

	if _, err := svc.CreateRoom(alice, request.CreateRoomRequest{MemberUuids: []string{bob}}); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if _, err := svc.CreateRoom(alice, request.CreateRoomRequest{MemberUuids: []string{carol}}); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	rooms, err := svc.ListRooms(alice)
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}
	rooms, err = svc.ListRooms(bob)
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(rooms))
	}
}
