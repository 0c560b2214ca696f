package core

import "github.com/golang-jwt/jwt/v4"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleReadOnly Role = "readonly"
)

// AdminClaims 管理 API 使用的 JWT 內容
type AdminClaims struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}
