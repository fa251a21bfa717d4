package gate

import "strings"

// RouteClass buckets a request path by the access it requires. Classification
// is a pure function of the path: every path maps to exactly one class.
type RouteClass int

const (
	// RoutePublic requires no credential, regardless of whether one is
	// presented.
	RoutePublic RouteClass = iota
	// RouteMerchant is the merchant dashboard subtree.
	RouteMerchant
	// RouteAdmin is the platform admin console subtree.
	RouteAdmin
)

const (
	merchantPrefix = "/dashboard/merchant"
	adminPrefix    = "/admin"
)

// classify buckets a request path. The first segment is the locale slot, so
// the protected prefixes are matched both on the raw path and with that slot
// removed; the slot is stripped even for unrecognized locale segments so a
// bad prefix cannot expose a protected subtree. Matching is exact
// path-segment prefixing, so /en/company/administration stays public while
// /en/admin and /en/admin/users are protected.
func classify(path string) RouteClass {
	if class := classifySegments(path); class != RoutePublic {
		return class
	}
	return classifySegments(stripFirstSegment(path))
}

func classifySegments(path string) RouteClass {
	switch {
	case segmentPrefixed(path, merchantPrefix):
		return RouteMerchant
	case segmentPrefixed(path, adminPrefix):
		return RouteAdmin
	default:
		return RoutePublic
	}
}

// requiredRole returns the role a protected class demands. Callers never pass
// RoutePublic.
func requiredRole(class RouteClass) Role {
	if class == RouteMerchant {
		return RoleMerchantAdmin
	}
	return RolePlatformAdmin
}

// segmentPrefixed reports whether path equals prefix or descends from it at a
// segment boundary.
func segmentPrefixed(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// stripFirstSegment drops the leading path segment: /en/admin -> /admin.
func stripFirstSegment(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[i:]
	}
	return "/"
}
