// ws_gateway.go
// 核心职责：WebSocket 订阅网关
// 1. 建立 WebSocket 连接 (Upgrade) 并完成 JWT 认证
// 2. 解析 subscribe/unsubscribe 控制帧，驱动订阅会话
// 3. 把订阅流中的事件转发给前端，通知流按接收者过滤
package subscription

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"nuri_social_server/internal/eventbus"
	"nuri_social_server/pkg/constants"
	"nuri_social_server/pkg/errorx"
	"nuri_social_server/pkg/util/jwt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	// 允许任何来源的连接，前端与后端端口通常不同
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// controlFrame 前端发来的控制帧
type controlFrame struct {
	Action  string `json:"action"`  // subscribe / unsubscribe
	Channel string `json:"channel"` // messages / notifications
}

// eventFrame 推送给前端的事件帧
type eventFrame struct {
	Channel string          `json:"channel"`
	Payload json.RawMessage `json:"payload"`
}

// errorFrame 推送给前端的错误帧
type errorFrame struct {
	Channel string `json:"channel"`
	Code    int    `json:"code"`
	Msg     string `json:"msg"`
}

// notificationRecipient 用于从通知事件中取出接收者
type notificationRecipient struct {
	UserUuid string `json:"userUuid"`
}

// Gateway WebSocket 订阅网关
type Gateway struct {
	bus eventbus.Bus
}

// NewGateway 创建订阅网关实例
func NewGateway(bus eventbus.Bus) *Gateway {
	return &Gateway{bus: bus}
}

// wsConn 一条已建立的订阅连接
// outbound 通道收敛所有写操作，保证同一连接只有一个写协程
type wsConn struct {
	conn     *websocket.Conn
	session  *SessionManager
	outbound chan []byte
	done     chan struct{}
}

// HandleWS 处理 WebSocket 接入
// 认证失败立即关闭连接，token 从 query 参数读取（浏览器 WS 不便携带 Header）
func (g *Gateway) HandleWS(c *gin.Context) {
	token := c.Query("token")
	claims, err := jwt.ParseToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code": errorx.CodeUnauthorized,
			"msg":  "无效的访问令牌",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("ws upgrade 失败", zap.Error(err))
		return
	}

	wc := &wsConn{
		conn:     conn,
		session:  NewSessionManager(claims.UserID, g.bus),
		outbound: make(chan []byte, constants.CHANNEL_SIZE),
		done:     make(chan struct{}),
	}
	zap.L().Info("ws 连接建立", zap.String("user", claims.UserID))

	go wc.writeLoop()
	wc.readLoop()
}

// readLoop 读取并分发控制帧，连接断开时清理全部订阅
func (w *wsConn) readLoop() {
	defer func() {
		w.session.CloseAll()
		close(w.done)
		if err := w.conn.Close(); err != nil {
			zap.L().Debug("关闭 ws 连接", zap.Error(err))
		}
		zap.L().Info("ws 连接断开", zap.String("user", w.session.UserUuid()))
	}()

	for {
		_, data, err := w.conn.ReadMessage()
		if err != nil {
			return
		}
		var frame controlFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			w.sendError(errorx.CodeInvalidParam, "控制帧格式错误")
			continue
		}
		key := ChannelKey{Kind: ChannelKind(frame.Channel)}

		switch frame.Action {
		case "subscribe":
			sub, created, err := w.session.Subscribe(key)
			if err != nil {
				w.sendError(errorx.GetCode(err), err.Error())
				continue
			}
			// 重复订阅返回已有流，不再起转发协程，保证单次投递
			if created {
				go w.forward(key.Kind, sub)
			}
		case "unsubscribe":
			w.session.Unsubscribe(key)
		default:
			w.sendError(errorx.CodeInvalidParam, "未知的控制动作 "+frame.Action)
		}
	}
}

// forward 把订阅流的事件转发到写通道
// 通知流为共享主题，转发前按接收者过滤
func (w *wsConn) forward(kind ChannelKind, sub *eventbus.Subscription) {
	for payload := range sub.C() {
		if kind == KindNotifications {
			var rcpt notificationRecipient
			if err := json.Unmarshal(payload, &rcpt); err != nil || rcpt.UserUuid != w.session.UserUuid() {
				continue
			}
		}
		frame, err := json.Marshal(eventFrame{Channel: string(kind), Payload: payload})
		if err != nil {
			zap.L().Error("序列化事件帧失败", zap.Error(err))
			continue
		}
		select {
		case w.outbound <- frame:
		case <-w.done:
			return
		}
	}
}

// writeLoop 唯一的写协程，从 outbound 通道取帧写给前端
func (w *wsConn) writeLoop() {
	for {
		select {
		case frame := <-w.outbound:
			if err := w.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				zap.L().Debug("ws 写入失败", zap.Error(err))
				return
			}
		case <-w.done:
			return
		}
	}
}

// sendError 推送错误帧，不中断连接
func (w *wsConn) sendError(code int, msg string) {
	frame, err := json.Marshal(errorFrame{Channel: "error", Code: code, Msg: msg})
	if err != nil {
		return
	}
	select {
	case w.outbound <- frame:
	case <-w.done:
	}
}
