package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"nuri_social_server/internal/config"
	"nuri_social_server/pkg/errorx"
)

// pushRequest 推送接入点的请求体
type pushRequest struct {
	To           string            `json:"to"`
	Notification pushNotification  `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type pushNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// httpPushGateway 基于 HTTP 接入点的推送实现
type httpPushGateway struct {
	endpoint  string
	serverKey string
	client    *http.Client
}

// mockPushGateway 本地 Mock 实现，只打日志不真正外发
type mockPushGateway struct{}

func (g *mockPushGateway) SendPushNotification(_ context.Context, deviceToken, title, body string, data map[string]string) error {
	zap.L().Info("【MockPush】推送通知",
		zap.String("deviceToken", deviceToken),
		zap.String("title", title),
		zap.String("body", body),
		zap.Any("data", data))
	return nil
}

// Init 根据配置创建推送网关实例
// endpoint 为空时使用本地 Mock，便于本机跑通通知链路
func Init(conf config.PushConfig) PushGateway {
	if conf.Endpoint == "" {
		zap.L().Warn("Push Gateway 使用本地 Mock 模式（仅打日志，不调用推送服务）")
		return &mockPushGateway{}
	}
	timeout := conf.Timeout * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpPushGateway{
		endpoint:  conf.Endpoint,
		serverKey: conf.ServerKey,
		client:    &http.Client{Timeout: timeout},
	}
}

// SendPushNotification 向推送接入点 POST 一条通知
func (g *httpPushGateway) SendPushNotification(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	payload, err := json.Marshal(pushRequest{
		To:           deviceToken,
		Notification: pushNotification{Title: title, Body: body},
		Data:         data,
	})
	if err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "序列化推送请求失败")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "构造推送请求失败")
	}
	req.Header.Set("Content-Type", "application/json")
	if g.serverKey != "" {
		req.Header.Set("Authorization", "key="+g.serverKey)
	}

	rsp, err := g.client.Do(req)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "调用推送接入点失败")
	}
	defer rsp.Body.Close()

	if rsp.StatusCode >= http.StatusBadRequest {
		return errorx.New(errorx.CodeServerBusy, fmt.Sprintf("推送接入点返回 %d", rsp.StatusCode))
	}
	return nil
}
