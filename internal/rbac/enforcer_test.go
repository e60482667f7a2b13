package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnforcerRolePolicies(t *testing.T) {
	enforcer, err := NewEnforcer()
	assert.NoError(t, err)

	cases := []struct {
		name    string
		sub     string
		obj     string
		act     string
		allowed bool
	}{
		{"supervisor can adjust workdays", "supervisor", "workday", "adjust", true},
		{"admin inherits workday adjust", "admin", "workday", "adjust", true},
		{"admin can create employees", "admin", "employee", "create", true},
		{"admin can run the sweep", "admin", "autologout", "sweep", true},
		{"admin can force logout all", "admin", "autologout", "force", true},
		{"supervisor cannot run the sweep", "supervisor", "autologout", "sweep", false},
		{"agent cannot adjust workdays", "agent", "workday", "adjust", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := enforcer.Enforce(tc.sub, tc.obj, tc.act)
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}
