package subscription

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"nuri_social_server/internal/eventbus"
	"nuri_social_server/pkg/util/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	jwt.Init("test-secret-test-secret-test-secret", 30, 168)
	os.Exit(m.Run())
}

// notifPayload 测试用的通知负载
type notifPayload struct {
	UserUuid string `json:"userUuid"`
	Marker   string `json:"marker"`
}

// newWsServer 起一个只挂订阅网关的测试服务
func newWsServer(t *testing.T, bus eventbus.Bus) *httptest.Server {
	t.Helper()
	engine := gin.New()
	engine.GET("/ws", NewGateway(bus).HandleWS)
	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)
	return server
}

// dialWS 以指定用户身份建立一条已认证的订阅连接
func dialWS(t *testing.T, server *httptest.Server, userUuid string) *websocket.Conn {
	t.Helper()
	token, err := jwt.GenerateAccessToken(userUuid)
	if err != nil {
		t.Fatalf("生成测试令牌失败: %v", err)
	}
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("ws 连接失败: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// subscribeChannel 发送 subscribe 控制帧
func subscribeChannel(t *testing.T, conn *websocket.Conn, channel string) {
	t.Helper()
	if err := conn.WriteJSON(map[string]string{"action": "subscribe", "channel": channel}); err != nil {
		t.Fatalf("发送控制帧失败: %v", err)
	}
}

// publishNotif 向共享通知主题发布一条带标记的事件
func publishNotif(t *testing.T, bus eventbus.Bus, userUuid, marker string) {
	t.Helper()
	payload, err := json.Marshal(notifPayload{UserUuid: userUuid, Marker: marker})
	if err != nil {
		t.Fatalf("序列化负载失败: %v", err)
	}
	if err := bus.Publish(context.Background(), NotificationsTopic, payload); err != nil {
		t.Fatalf("Publish 失败: %v", err)
	}
}

// waitSubscribed 后台按节拍发布哨兵事件直到连接收到，确认订阅经 readLoop 生效；
// 主协程在单个宽限期内阻塞读取（gorilla 连接在任何读错误后即永久失效，不能重复读）
func waitSubscribed(t *testing.T, bus eventbus.Bus, conn *websocket.Conn, userUuid string) {
	t.Helper()
	payload, err := json.Marshal(notifPayload{UserUuid: userUuid, Marker: "ready"})
	if err != nil {
		t.Fatalf("序列化负载失败: %v", err)
	}
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			bus.Publish(context.Background(), NotificationsTopic, payload)
			select {
			case <-done:
				return
			case <-ticker.C:
			}
		}
	}()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("订阅未生效: %v", err)
		}
		var frame eventFrame
		if json.Unmarshal(data, &frame) == nil && frame.Channel == string(KindNotifications) {
			return
		}
	}
}

// expectMarker 读取事件帧直到出现目标标记，读到 forbidden 标记视为失败
func expectMarker(t *testing.T, conn *websocket.Conn, want, forbidden string) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("等待事件 %q 失败: %v", want, err)
		}
		var frame eventFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			t.Fatalf("解析事件帧失败: %v", err)
		}
		var p notifPayload
		if err := json.Unmarshal(frame.Payload, &p); err != nil {
			t.Fatalf("解析事件负载失败: %v", err)
		}
		switch p.Marker {
		case want:
			return
		case forbidden:
			t.Fatalf("收到了发给其他用户的事件 %q", forbidden)
		}
		// 哨兵事件，继续读
	}
}

func TestNotificationsRecipientFilter(t *testing.T) {
	bus := eventbus.NewChannelBus()
	defer bus.Close()
	server := newWsServer(t, bus)

	connA := dialWS(t, server, "user-a")
	connB := dialWS(t, server, "user-b")
	subscribeChannel(t, connA, string(KindNotifications))
	subscribeChannel(t, connB, string(KindNotifications))
	waitSubscribed(t, bus, connA, "user-a")
	waitSubscribed(t, bus, connB, "user-b")

	// 共享主题上先发给 B 再发给 A：A 不能看到 B 的事件
	publishNotif(t, bus, "user-b", "only-b")
	publishNotif(t, bus, "user-a", "for-a")

	expectMarker(t, connA, "for-a", "only-b")
	expectMarker(t, connB, "only-b", "for-a")
}

func TestMessageChannelForward(t *testing.T) {
	bus := eventbus.NewChannelBus()
	defer bus.Close()
	server := newWsServer(t, bus)

	conn := dialWS(t, server, "user-a")
	subscribeChannel(t, conn, string(KindMessages))

	// 后台按节拍发布直到收到，确认订阅经 readLoop 生效后事件原样转发；
	// 主协程在单个宽限期内阻塞读取（gorilla 连接在任何读错误后即永久失效，不能重复读）
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			bus.Publish(context.Background(), MessageTopic("user-a"), []byte(`{"content":"你好"}`))
			select {
			case <-done:
				return
			case <-ticker.C:
			}
		}
	}()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("等待消息事件超时: %v", err)
	}
	var frame eventFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("解析事件帧失败: %v", err)
	}
	if frame.Channel != string(KindMessages) || string(frame.Payload) != `{"content":"你好"}` {
		t.Fatalf("事件帧内容不符: %+v", frame)
	}
}

func TestSubscribeUnknownChannelReturnsError(t *testing.T) {
	bus := eventbus.NewChannelBus()
	defer bus.Close()
	server := newWsServer(t, bus)

	conn := dialWS(t, server, "user-a")
	subscribeChannel(t, conn, "bogus")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("等待错误帧失败: %v", err)
	}
	var frame errorFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("解析错误帧失败: %v", err)
	}
	if frame.Channel != "error" || frame.Code == 0 {
		t.Fatalf("错误帧内容不符: %+v", frame)
	}
}

func TestHandleWSRejectsBadToken(t *testing.T) {
	bus := eventbus.NewChannelBus()
	defer bus.Close()
	server := newWsServer(t, bus)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?token=not-a-token"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		conn.Close()
		t.Fatalf("无效令牌不应建立连接")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("期望 401 拒绝，实际 %+v", resp)
	}
}
