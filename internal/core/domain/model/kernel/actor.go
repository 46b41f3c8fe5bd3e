package kernel

import (
	"errors"

	"laundry/internal/pkg/errs"
)

// ErrUserNameIsRequired is returned when attempting to create an Actor without a user name.
var ErrUserNameIsRequired = errs.NewValueIsRequiredError("userName")

// Actor identifies who is performing an engine operation and on behalf of
// which tenant. It is resolved by the outer session layer and passed
// explicitly into every command and query; the engine never reads identity
// from ambient state. Every persistence call is scoped by Actor.TenantID.
//
// Actor is immutable. The zero value is invalid and must be constructed via
// NewActor.
type Actor struct {
	tenantID UUID
	userID   UUID
	userName string
}

// NewActor creates an Actor from a resolved session.
// Tenant and user identifiers must be valid UUIDs and the user name must be
// non-empty; validation errors are aggregated.
func NewActor(tenantID, userID UUID, userName string) (Actor, error) {
	actor := Actor{}

	if err := errors.Join(
		actor.setTenantID(tenantID),
		actor.setUserID(userID),
		actor.setUserName(userName),
	); err != nil {
		return Actor{}, err
	}

	return actor, nil
}

// TenantID returns the tenant the actor operates within.
func (a Actor) TenantID() UUID {
	return a.tenantID
}

// UserID returns the acting user's identifier.
func (a Actor) UserID() UUID {
	return a.userID
}

// UserName returns the acting user's display name, recorded in audit rows.
func (a Actor) UserName() string {
	return a.userName
}

// Validate checks that the actor carries a valid tenant and user identity.
func (a Actor) Validate() error {
	return errors.Join(
		a.tenantID.Validate(),
		a.userID.Validate(),
	)
}

func (a *Actor) setTenantID(tenantID UUID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	a.tenantID = tenantID
	return nil
}

func (a *Actor) setUserID(userID UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	a.userID = userID
	return nil
}

func (a *Actor) setUserName(userName string) error {
	if userName == "" {
		return ErrUserNameIsRequired
	}
	a.userName = userName
	return nil
}
