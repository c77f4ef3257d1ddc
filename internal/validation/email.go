// Package validation provides pure validation predicates shared by the
// login and signup flows.
package validation

import "strings"

// InstitutionalEmail reports whether email belongs to the given
// institutional domain. The check is a case-insensitive suffix match on
// the trimmed address; it is the single shared predicate both auth flows
// use, not real authentication.
func InstitutionalEmail(email, domain string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	domain = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(domain), "@"))
	if domain == "" {
		return false
	}
	return strings.HasSuffix(email, "@"+domain)
}
