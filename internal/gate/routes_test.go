package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Classify(t *testing.T) {
	tests := []struct {
		path string
		want RouteClass
	}{
		{"/", RoutePublic},
		{"/ro", RoutePublic},
		{"/ro/contact", RoutePublic},
		{"/en/auth/login", RoutePublic},
		{"/en/dashboard/merchant", RouteMerchant},
		{"/en/dashboard/merchant/invoices/42", RouteMerchant},
		{"/dashboard/merchant", RouteMerchant},
		{"/nl/admin", RouteAdmin},
		{"/nl/admin/merchants", RouteAdmin},
		{"/admin", RouteAdmin},
		// Unrecognized locale slot still protects the subtree underneath.
		{"/xx/admin", RouteAdmin},
		{"/xx/dashboard/merchant", RouteMerchant},
		// Segment matching: lookalike paths stay public.
		{"/en/company/administration", RoutePublic},
		{"/en/administrator", RoutePublic},
		{"/en/dashboard/merchants", RoutePublic},
		{"/en/dashboard", RoutePublic},
		{"/admins", RoutePublic},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.path))
		})
	}
}

func Test_RoleHome(t *testing.T) {
	assert.Equal(t, "/en/dashboard/merchant", homePath(RoleMerchantAdmin, "en"))
	assert.Equal(t, "/ro/admin", homePath(RolePlatformAdmin, "ro"))
	assert.Equal(t, "/fr/auth/login", homePath(Role("support_agent"), "fr"))
	assert.Equal(t, "/nl/auth/login", homePath(Role(""), "nl"))
}

func Test_RoleKnown(t *testing.T) {
	assert.True(t, RoleMerchantAdmin.Known())
	assert.True(t, RolePlatformAdmin.Known())
	assert.False(t, Role("billing_clerk").Known())
	assert.False(t, Role("").Known())
}
