package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/nba-possession-sim/internal/providers"
)

// normalizeProviderName is the label roster loads are logged and counted under. An explicit
// PROVIDER wins; otherwise the package of the concrete provider type is used ("*file.Provider"
// becomes "file").
func normalizeProviderName(raw string, provider providers.RosterProvider) string {
	if name := strings.ToLower(strings.TrimSpace(raw)); name != "" {
		return name
	}
	if provider == nil {
		return "provider"
	}
	typeName := strings.TrimPrefix(fmt.Sprintf("%T", provider), "*")
	if pkg, _, ok := strings.Cut(typeName, "."); ok && pkg != "" {
		return strings.ToLower(pkg)
	}
	return strings.ToLower(typeName)
}
