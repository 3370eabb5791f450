package main

import (
	"fmt"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"livechat/auth"
	"livechat/domain"
	"os"
	"time"
)

func buildTokenCmd() *cobra.Command {
	var (
		userID   string
		roles    []string
		duration time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a websocket token signed with AUTH_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := os.Getenv("AUTH_SECRET")
			if secret == "" {
				return fmt.Errorf("AUTH_SECRET is not set")
			}
			parsed := make([]domain.Role, 0, len(roles))
			for _, r := range lo.Uniq(roles) {
				role, err := domain.ToRole(r)
				if err != nil {
					return fmt.Errorf("role %q: %w", r, err)
				}
				parsed = append(parsed, role)
			}
			token, err := auth.NewTokenIssuer(secret, duration).GenerateToken(userID, parsed)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User id carried by the token")
	cmd.Flags().StringSliceVar(&roles, "role", []string{string(domain.RoleVisitor)}, "Role(s) granted")
	cmd.Flags().DurationVar(&duration, "ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
