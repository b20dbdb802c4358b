package keys

import (
	"strings"
)

const (
	// PfxEvents prefixes the recent event lists kept per contract
	PfxEvents = "events"
	// PfxHttpCache prefixes cached http responses
	PfxHttpCache = "httpCache"
	// PfxProbe prefixes cached interface probes of remote contracts
	PfxProbe = "probe"
	// PfxHealthCheck prefixes the key written by health checks
	PfxHealthCheck = "healthCheck"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// GetPrefix returns the first two components of a key, used as metrics tag
func GetPrefix(key string) string {
	s := strings.Split(key, ":")
	if len(s) > 2 {
		return strings.Join(s[:2], ":")
	} else if len(s) > 1 {
		return s[0]
	}
	return ""
}
