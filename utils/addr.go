package utils

import (
	"strconv"
	"strings"
)

// ServerURL turns a listen address such as "12000", ":12000" or
// "host:12000" into an http base URL. URLs with a scheme pass through.
func ServerURL(addr string) string {
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return strings.TrimSuffix(addr, "/")
	}

	// if no colon, assume it's a bare port number
	if !strings.Contains(addr, ":") {
		if _, err := strconv.Atoi(addr); err == nil {
			addr = ":" + addr
		}
	}

	// if address starts with colon, prepend localhost
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}

	return "http://" + addr
}
