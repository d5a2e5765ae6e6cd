package auth

import "strings"

// RouteClass partitions request paths into protection classes.
type RouteClass int

const (
	RoutePublic RouteClass = iota
	RouteUser
	RouteAdmin
)

func (c RouteClass) String() string {
	switch c {
	case RouteUser:
		return "user"
	case RouteAdmin:
		return "admin"
	default:
		return "public"
	}
}

// RouteClassifier maps paths to RouteClass by prefix match.
//
// Policy: protection is an explicit allow-list. A path that matches no
// configured prefix is Public; unrecognized paths are never protected.
// On overlap, admin prefixes win over user prefixes, which win over
// public prefixes.
type RouteClassifier struct {
	admin  []string
	user   []string
	public []string
}

// NewRouteClassifier builds a classifier from ordered prefix lists.
func NewRouteClassifier(adminPrefixes, userPrefixes, publicPrefixes []string) *RouteClassifier {
	return &RouteClassifier{
		admin:  append([]string(nil), adminPrefixes...),
		user:   append([]string(nil), userPrefixes...),
		public: append([]string(nil), publicPrefixes...),
	}
}

// Classify returns the protection class for a request path.
func (rc *RouteClassifier) Classify(path string) RouteClass {
	if matchesPrefix(path, rc.admin) {
		return RouteAdmin
	}
	if matchesPrefix(path, rc.user) {
		return RouteUser
	}
	return RoutePublic
}

func matchesPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix == "" {
			continue
		}
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
