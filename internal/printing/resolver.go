package printing

import (
	"fmt"

	"warehouse-print-agent/internal/models"
)

// Resolve maps a document type to its configured printer route.
//
// A missing entry and a disabled entry are the same failure on purpose: a
// route that exists but is switched off must never be silently replaced by
// another printer. An enabled route with auto-print off is a distinct,
// operator-visible condition.
func Resolve(dt models.DocumentType, profile models.StationProfile) (models.PrinterRoute, error) {
	route, ok := profile.Route(dt)
	if !ok || !route.Enabled {
		return models.PrinterRoute{}, fmt.Errorf("%w: %q", ErrNoRouteConfigured, dt)
	}
	if !route.AutoPrint {
		return models.PrinterRoute{}, fmt.Errorf("%w: %q", ErrAutoPrintDisabled, dt)
	}
	return route, nil
}
