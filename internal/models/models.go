package models

import "time"

// DocumentType is the business category of a print job. It is the key into
// the station routing table.
type DocumentType string

const (
	DocTypeShippingLabel DocumentType = "shipping-label"
	DocTypeInvoice       DocumentType = "invoice"
	DocTypePackingSlip   DocumentType = "packing-slip"
	DocTypePickList      DocumentType = "pick-list"
)

// Format identifies the encoding of a job payload and selects the conversion
// branch. ZPL and EPL payloads go through the remote label renderer; PDF and
// image payloads are decoded as-is.
type Format string

const (
	FormatZPL   Format = "zpl"
	FormatEPL   Format = "epl"
	FormatPDF   Format = "pdf"
	FormatImage Format = "image"
)

// PrintJob is a single print request as received from the portal.
type PrintJob struct {
	ID           string            `json:"jobId"`
	DocumentType DocumentType      `json:"documentType"`
	Format       Format            `json:"format"`
	Payload      string            `json:"payload"` // data URL or bare base64
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// PrinterRoute binds one document type to a physical printer.
type PrinterRoute struct {
	PrinterName string `json:"printerName"`
	AutoPrint   bool   `json:"autoPrint"`
	Enabled     bool   `json:"enabled"`
	Is4x6       bool   `json:"is4x6"` // true: thermal 4x6 stock, print at actual size
}

// StationProfile is the persistent per-workstation configuration. Routes may
// be absent per document type, meaning "not configured".
type StationProfile struct {
	StationID   string                        `json:"stationId"`
	StationName string                        `json:"stationName"`
	Routes      map[DocumentType]PrinterRoute `json:"routes"`
	APIURL      string                        `json:"apiUrl"`
}

// Route looks up the binding for a document type.
func (p StationProfile) Route(dt DocumentType) (PrinterRoute, bool) {
	r, ok := p.Routes[dt]
	return r, ok
}

// PrintResult is the outcome of a single job.
type PrintResult struct {
	Success    bool   `json:"success"`
	JobID      string `json:"jobId"`
	Printer    string `json:"printer,omitempty"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

// BatchError identifies one failed job within a batch.
type BatchError struct {
	JobID string `json:"jobId"`
	Error string `json:"error"`
}

// BatchOutcome aggregates a processed job sequence. It is built incrementally
// as each job completes and immutable once returned.
type BatchOutcome struct {
	Total      int          `json:"total"`
	Successful int          `json:"successful"`
	Failed     int          `json:"failed"`
	Errors     []BatchError `json:"errors"`
	DurationMs int64        `json:"durationMs"`
}

// PrinterInfo describes one installed printer as reported by the OS, with
// heuristic type and connection classification.
type PrinterInfo struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Type       string `json:"type"`                 // zebra, standard, unknown
	Connection string `json:"connection,omitempty"` // usb, network, bluetooth
}

const (
	PrinterTypeZebra    = "zebra"
	PrinterTypeStandard = "standard"
	PrinterTypeUnknown  = "unknown"

	ConnectionUSB       = "usb"
	ConnectionNetwork   = "network"
	ConnectionBluetooth = "bluetooth"
)

// JobRecord is a recent-activity entry kept in memory and pushed to
// connected consoles. Not persisted.
type JobRecord struct {
	ID           string       `json:"id"`
	DocumentType DocumentType `json:"documentType"`
	Printer      string       `json:"printer,omitempty"`
	Status       string       `json:"status"`
	Error        string       `json:"error,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// DeviceInfo represents the core identity of the workstation hardware.
type DeviceInfo struct {
	MAC      string   `json:"mac"`
	MACs     []string `json:"mac_list"`
	IP       string   `json:"local_ip"`
	Hostname string   `json:"hostname"`
	OS       string   `json:"os_platform"`
	Version  string   `json:"agent_version"`
}

const (
	AgentVersion = "1.0.2"
	DefaultPort  = "3044"

	StatusPending   = "pending"
	StatusPrinting  = "printing"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)
