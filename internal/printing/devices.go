package printing

import (
	"strings"

	"warehouse-print-agent/internal/models"
)

// rawPrinter is what the platform enumeration returns before classification.
type rawPrinter struct {
	Name   string
	Status string
}

// Keyword rules evaluated in order over the case-normalized device name.
// First match wins. This is a heuristic and may misclassify; the portal
// treats the result as a hint, not a guarantee.
var typeRules = []struct {
	keyword string
	ptype   string
}{
	{"zebra", models.PrinterTypeZebra},
	{"ztc", models.PrinterTypeZebra},
	{"zd", models.PrinterTypeZebra},
}

var connectionRules = []struct {
	keyword    string
	connection string
}{
	{"usb", models.ConnectionUSB},
	{"network", models.ConnectionNetwork},
	{"bluetooth", models.ConnectionBluetooth},
	{"bt", models.ConnectionBluetooth},
	// "ip" last: it is the loosest keyword and would otherwise shadow
	// names like "Receipt".
	{"ip", models.ConnectionNetwork},
}

// ListPrinters enumerates installed printers and classifies each by name.
func ListPrinters() ([]models.PrinterInfo, error) {
	raw, err := listInstalledPrinters()
	if err != nil {
		return nil, err
	}

	infos := make([]models.PrinterInfo, 0, len(raw))
	for _, p := range raw {
		ptype, connection := ClassifyPrinter(p.Name)
		infos = append(infos, models.PrinterInfo{
			Name:       p.Name,
			Status:     p.Status,
			Type:       ptype,
			Connection: connection,
		})
	}
	return infos, nil
}

// ClassifyPrinter maps a device name onto a printer type and connection kind.
func ClassifyPrinter(name string) (ptype, connection string) {
	if strings.TrimSpace(name) == "" {
		return models.PrinterTypeUnknown, ""
	}
	lower := strings.ToLower(name)

	ptype = models.PrinterTypeStandard
	for _, rule := range typeRules {
		if strings.Contains(lower, rule.keyword) {
			ptype = rule.ptype
			break
		}
	}

	for _, rule := range connectionRules {
		if strings.Contains(lower, rule.keyword) {
			connection = rule.connection
			break
		}
	}
	return ptype, connection
}
