// Package domain contains core concepts of the chat system.
// This file defines connected principals, their roles and presence invariants.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"github.com/samber/lo"
	"livechat/errors"
	"time"
)

type Role string

const (
	RoleVisitor    Role = "visitor"
	RoleCommercial Role = "commercial"
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
)

func ToRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleVisitor, RoleCommercial, RoleAdmin, RoleSupervisor:
		return r, nil
	default:
		return "", errors.ErrUnknownRole
	}
}

// ConnectionUser is the live connectivity of one principal.
// A user holds at most one transport handle; reconnecting replaces it.
type ConnectionUser struct {
	UserID         string
	Roles          []Role
	SocketID       string
	ConnectedAt    time.Time
	LastSeenAt     time.Time
	DisconnectedAt *time.Time
}

// IsConnected is true iff the record holds a transport handle and has not
// been disconnected since that handle was attached.
func (c ConnectionUser) IsConnected() bool {
	if c.SocketID == "" {
		return false
	}
	return c.DisconnectedAt == nil || c.DisconnectedAt.Before(c.ConnectedAt)
}

func (c ConnectionUser) HasRole(role Role) bool {
	return lo.Contains(c.Roles, role)
}

func (c ConnectionUser) IsCommercial() bool {
	return c.HasRole(RoleCommercial)
}
