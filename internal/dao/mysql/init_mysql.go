// Package mysql 提供数据访问层的初始化和数据库连接管理
// 负责建立 MySQL 连接、自动迁移表结构、初始化 Repository 层
package mysql

import (
	"fmt"

	"nuri_social_server/internal/config"
	"nuri_social_server/internal/model"

	"go.uber.org/zap"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Init 初始化数据库连接并返回 Repository 层实例
// 执行步骤：
//  1. 从配置读取 MySQL 连接信息并构建 DSN
//  2. 使用 GORM 建立数据库连接（开启错误翻译，唯一约束冲突可被识别为 Conflict）
//  3. 执行 AutoMigrate 自动迁移表结构
//  4. 创建并返回 Repository 实例
func Init() *Repositories {
	conf := config.GetConfig()

	// 构建 MySQL DSN 连接字符串
	// 格式：user:password@tcp(host:port)/database?params
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.MysqlConfig.User,
		conf.MysqlConfig.Password,
		conf.MysqlConfig.Host,
		conf.MysqlConfig.Port,
		conf.MysqlConfig.DatabaseName,
	)

	// TranslateError 让驱动层的重复键错误统一翻译为 gorm.ErrDuplicatedKey
	db, err := gorm.Open(mysqldriver.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		zap.L().Fatal(err.Error())
	}

	if err := Migrate(db); err != nil {
		zap.L().Fatal(err.Error())
	}

	return NewRepositories(db)
}

// Migrate 自动迁移表结构
// 如果表不存在则创建，如果字段变更则更新结构；不会删除已有字段或数据
// 测试使用 sqlite 时也走这里
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.UserInfo{},      // 用户信息表
		&model.Credential{},    // 凭证表
		&model.Room{},          // 房间表
		&model.RoomMember{},    // 房间成员表
		&model.ChatRequest{},   // 聊天请求表
		&model.Message{},       // 消息表
		&model.Notification{},  // 通知表
		&model.Friend{},        // 好友关系表
		&model.FriendRequest{}, // 好友申请表
		&model.Follower{},      // 关注关系表
		&model.Story{},         // 动态表
		&model.Comment{},       // 评论表
		&model.FileRecord{},    // 文件目录表
	)
}
