package constants

const (
	CHANNEL_SIZE               = 100 // 通道大小
	MESSAGE_MAX_LENGTH         = 500 // 文本消息最大长度
	MESSAGE_PAGE_SIZE          = 20  // 消息分页默认大小
	REDIS_TIMEOUT              = 1   // redis timeout (分钟)
	REFRESH_TOKEN_EXPIRY_HOURS = 168 // Refresh Token 有效期（小时），168小时 = 7天
)
