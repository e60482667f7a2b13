// Package rbac builds the casbin enforcer used by the route-level
// Authorize middleware. Policies are role based: supervisors can record
// adjustments, admins additionally own the auto-logout controls.
package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// NewEnforcer returns an enforcer seeded with the built-in role
// policies. Replacing the seed with a database adapter only changes
// this constructor.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies := [][]string{
		{"supervisor", "workday", "adjust"},
		{"admin", "employee", "create"},
		{"admin", "autologout", "sweep"},
		{"admin", "autologout", "force"},
	}
	if _, err := enforcer.AddPolicies(policies); err != nil {
		return nil, err
	}

	// Admins inherit everything supervisors can do.
	if _, err := enforcer.AddGroupingPolicy("admin", "supervisor"); err != nil {
		return nil, err
	}

	return enforcer, nil
}
