package jwt

import (
	"regexp"
	"strings"
)

// Matches a bare origin of the form host.tld, with optional scheme and
// optional www prefix. Ports, IPs and single-label hosts (localhost) fail.
var cookieDomainRe = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?([a-z0-9.-]+\.[a-z]{2,6})$`)

// DeriveCookieDomain turns the configured frontend URL into the broadest
// safe cookie Domain attribute so sessions stay valid across subdomains:
// https://www.app.example.com -> .example.com. Returns "" when the input
// does not fit the host.tld shape; the cookie is then scoped to the exact
// host (bare localhost rejects dotted domains anyway). Runs once at wiring
// time, not per request.
func DeriveCookieDomain(frontendUrl string) string {
	match := cookieDomainRe.FindStringSubmatch(strings.TrimSpace(frontendUrl))
	if match == nil {
		return ""
	}

	parts := strings.Split(match[1], ".")
	return "." + strings.Join(parts[len(parts)-2:], ".")
}
