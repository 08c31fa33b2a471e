package domain

import "strings"

// HeaderValue looks up a response header by name, case-insensitively,
// and returns its first value. A server sending "content-type" must be
// found when the assertion names "Content-Type".
func HeaderValue(headers map[string][]string, name string) (string, bool) {
	if len(headers) == 0 {
		return "", false
	}
	for k, vals := range headers {
		if strings.EqualFold(k, name) && len(vals) > 0 {
			return vals[0], true
		}
	}
	return "", false
}
