package model

import "time"

// User 结构体表示用户模型。用户的注册和凭证签发由外部系统负责，
// 本服务只读取用户的展示信息用于创建时的快照。
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}
