package domain

import (
	"net/url"
	"strings"
)

// IsValidPinURL reports whether input is an absolute pin URL
func IsValidPinURL(input string) bool {
	u, err := url.Parse(strings.TrimSpace(input))
	if err != nil || !u.IsAbs() || u.Host == "" {
		return false
	}
	return strings.Contains(strings.ToLower(u.Hostname()), "pinterest.com") && strings.Contains(u.Path, "/pin/")
}
