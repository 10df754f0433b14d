package domain

import (
	"context"
	"time"
)

type PageOwner struct {
	ID          string
	SalesPageID string
	UserID      string
	AssignedBy  string
	Active      bool
	AssignedAt  time.Time
}

type PageOwnerRepository interface {
	AssignOwner(ctx context.Context, owner *PageOwner) error
	GetActiveOwner(ctx context.Context, salesPageID string) (*PageOwner, error)
}

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleSales Role = "SALES"
	RoleUser  Role = "USER"
)

// Operator is the authenticated dashboard user performing an action.
type Operator struct {
	UserID string
	Role   Role
}

func (o Operator) CanWithdraw() bool {
	return o.Role == RoleAdmin
}

func (o Operator) IsAdmin() bool {
	return o.Role == RoleAdmin
}
