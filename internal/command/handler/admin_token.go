package command

import (
	"fmt"
	"time"

	"modelfetch/config"
	"modelfetch/internal/core"
	"modelfetch/internal/pkg/auth"

	"github.com/spf13/cobra"
)

type AdminTokenHandler struct {
	secretKey string
}

func NewAdminTokenHandler(conf *config.Configuration) *AdminTokenHandler {
	return &AdminTokenHandler{secretKey: conf.App.SecretKey}
}

func BindAdminTokenFlags(cmd *cobra.Command) {
	cmd.Flags().String("username", "admin", "token subject")
	cmd.Flags().String("role", string(core.RoleAdmin), "admin / readonly")
	cmd.Flags().Duration("ttl", 24*time.Hour, "token lifetime")
}

// Issue 簽發管理 API 用的 JWT
func (handler *AdminTokenHandler) Issue(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("username")
	role, _ := cmd.Flags().GetString("role")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	switch core.Role(role) {
	case core.RoleAdmin, core.RoleReadOnly:
	default:
		return fmt.Errorf("unknown role %q", role)
	}
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive")
	}

	token, err := auth.IssueAdminToken(handler.secretKey, username, core.Role(role), ttl)
	if err != nil {
		return err
	}
	cmd.Println(token)
	return nil
}
