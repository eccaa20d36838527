package account

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleGymOwner   Role = "gym_owner"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleGymOwner, RoleSuperAdmin:
		return true
	}
	return false
}

// Capability is something a role is allowed to do. Each capability maps to
// exactly one role; there is no inheritance between roles.
type Capability int

const (
	ManagePlatform Capability = iota
	OwnGyms
	JoinChallenges
)

func (r Role) Can(c Capability) bool {
	switch c {
	case ManagePlatform:
		return r == RoleSuperAdmin
	case OwnGyms:
		return r == RoleGymOwner
	case JoinChallenges:
		return r == RoleClient
	}
	return false
}

type Account struct {
	ID           string    `bson:"_id"          json:"id"`
	Email        string    `bson:"email"        json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         Role      `bson:"role"         json:"role"`
	IsActive     bool      `bson:"isActive"     json:"isActive"`
	CreatedAt    time.Time `bson:"createdAt"    json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"    json:"updatedAt"`
}

func New(email, passwordHash string, role Role, now time.Time) Account {
	return Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (a Account) WithActive(active bool, now time.Time) Account {
	a.IsActive = active
	a.UpdatedAt = now
	return a
}

func (a Account) IsSuperAdmin() bool { return a.Role == RoleSuperAdmin }
func (a Account) IsGymOwner() bool   { return a.Role == RoleGymOwner }
func (a Account) IsClient() bool     { return a.Role == RoleClient }
