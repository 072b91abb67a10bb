package customer

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("customer: not found")
	ErrNotAdministrator = errors.New("customer: action log requires administrator role")
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Customer is a role-discriminated account record. The shared profile fields
// live here; the role decides which capabilities apply (loyalty for shoppers,
// the action log for administrators).
type Customer struct {
	ID      string
	Name    string
	Email   string
	Address string
	Phone   string
	Role    Role
	Loyalty *LoyaltyAccount
	actions []ActionLog
}

func New(id, name, email, address, phone string) *Customer {
	return &Customer{
		ID:      id,
		Name:    name,
		Email:   email,
		Address: address,
		Phone:   phone,
		Role:    RoleCustomer,
		Loyalty: NewLoyaltyAccount(),
	}
}

func NewAdministrator(id, name, email, address, phone string) *Customer {
	return &Customer{
		ID:      id,
		Name:    name,
		Email:   email,
		Address: address,
		Phone:   phone,
		Role:    RoleAdmin,
	}
}

func (c *Customer) IsAdmin() bool { return c.Role == RoleAdmin }

func (c *Customer) UpdateProfile(name, address, phone string) {
	c.Name = name
	c.Address = address
	c.Phone = phone
}

// ActionLog records an administrative action for audit purposes.
type ActionLog struct {
	AdminID string
	Action  string
	At      time.Time
}

func (c *Customer) LogAction(action string) (ActionLog, error) {
	if !c.IsAdmin() {
		return ActionLog{}, ErrNotAdministrator
	}
	entry := ActionLog{AdminID: c.ID, Action: action, At: time.Now().UTC()}
	c.actions = append(c.actions, entry)
	return entry, nil
}

func (c *Customer) Actions() []ActionLog {
	out := make([]ActionLog, len(c.actions))
	copy(out, c.actions)
	return out
}

func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Loyalty = c.Loyalty.clone()
	clone.actions = make([]ActionLog, len(c.actions))
	copy(clone.actions, c.actions)
	return &clone
}
