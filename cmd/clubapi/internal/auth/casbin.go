package auth

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"
)

//go:embed model.conf
var casbinModelContent string

//go:embed policy.csv
var casbinPolicyContent string

// Ownership describes the relation between the acting user and the target
// resource. ActorID is zero for anonymous callers; OwnerID is zero when the
// action has no owned target.
type Ownership struct {
	ActorID int64
	OwnerID int64
}

// Self reports whether the actor owns the target.
func (o Ownership) Self() bool {
	return o.ActorID != 0 && o.ActorID == o.OwnerID
}

func (o Ownership) scope() string {
	if o.Self() {
		return "self"
	}
	return "other"
}

// DecisionObserver is notified of every policy decision.
type DecisionObserver func(role Role, action Action, allowed bool)

// Policy is the Role Policy: a pure, in-memory decision table mapping
// (role, action, ownership) to allow or deny. It performs no I/O after
// construction and is safe for concurrent use.
type Policy struct {
	enforcer *casbin.SyncedEnforcer
	observer DecisionObserver
}

// NewPolicy builds the Casbin enforcer from the embedded model and policy.
func NewPolicy() (*Policy, error) {
	m, err := model.NewModelFromString(casbinModelContent)
	if err != nil {
		return nil, fmt.Errorf("parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m, stringadapter.NewAdapter(casbinPolicyContent))
	if err != nil {
		return nil, fmt.Errorf("create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load casbin policies: %w", err)
	}

	return &Policy{enforcer: enforcer}, nil
}

// MustPolicy is NewPolicy for callers that cannot proceed without a policy.
func MustPolicy() *Policy {
	p, err := NewPolicy()
	if err != nil {
		panic(err)
	}
	return p
}

// WithObserver returns a copy of the policy that reports decisions to fn.
func (p *Policy) WithObserver(fn DecisionObserver) *Policy {
	cp := *p
	cp.observer = fn
	return &cp
}

// CanPerform decides whether a user holding role may perform action on a
// target with the given ownership. ADMIN is allowed everything, CORE_TEAM
// may only modify content it created, and unknown roles get the anonymous
// subject's permissions.
func (p *Policy) CanPerform(role Role, action Action, own Ownership) bool {
	allowed, err := p.enforcer.Enforce(RoleID(role), string(action), own.scope())
	if err != nil {
		allowed = false
	}
	if p.observer != nil {
		p.observer(role, action, allowed)
	}
	return allowed
}
