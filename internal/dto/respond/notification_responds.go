package respond

import "encoding/json"

// NotificationRespond 通知响应
// userUuid 为接收者，订阅网关按该字段过滤共享通知流
// 使用位置:
//   - internal/service/notification/service.go: Create, List
//   - internal/gateway/subscription: 通知流事件负载
type NotificationRespond struct {
	Uuid      string          `json:"uuid"`
	UserUuid  string          `json:"userUuid"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Read      bool            `json:"read"`
	CreatedAt string          `json:"createdAt"`
}
