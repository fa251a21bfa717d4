package gate

// Role tags the closed set of principal roles the platform issues. The zero
// value is not a valid role.
type Role string

const (
	// RoleMerchantAdmin owns a merchant workspace (invoices, credit notes,
	// settings).
	RoleMerchantAdmin Role = "merchant_admin"
	// RolePlatformAdmin operates the platform-wide admin console.
	RolePlatformAdmin Role = "platform_admin"
)

// Known reports whether r is one of the recognized role tags.
func (r Role) Known() bool {
	switch r {
	case RoleMerchantAdmin, RolePlatformAdmin:
		return true
	default:
		return false
	}
}

// homePath returns the locale-prefixed home page for a role. Unrecognized
// roles have no home and land on the login page.
func homePath(role Role, locale string) string {
	switch role {
	case RoleMerchantAdmin:
		return "/" + locale + "/dashboard/merchant"
	case RolePlatformAdmin:
		return "/" + locale + "/admin"
	default:
		return "/" + locale + "/auth/login"
	}
}
