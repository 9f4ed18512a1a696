// Package push 提供设备推送服务
// 本文件定义推送网关接口，遵循依赖倒置原则
package push

import "context"

// PushGateway 推送网关接口
// 抽象设备推送操作，支持多种实现（HTTP 接入点、本地 mock 等）
// 推送是尽力而为的：调用方记录失败日志后继续，不做重试
type PushGateway interface {
	// SendPushNotification 向指定设备推送通知
	// deviceToken: 目标设备令牌
	// title/body: 通知标题与正文
	// data: 附加业务数据
	SendPushNotification(ctx context.Context, deviceToken, title, body string, data map[string]string) error
}

// 确保两种实现都满足 PushGateway 接口
var (
	_ PushGateway = (*httpPushGateway)(nil)
	_ PushGateway = (*mockPushGateway)(nil)
)
