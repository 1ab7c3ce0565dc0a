package printing

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vincent-petithory/dataurl"
	"go.uber.org/zap"

	"warehouse-print-agent/internal/models"
)

// Artifact is the printable byte stream produced by conversion. It lives in
// memory only; the executor materializes it to disk for the spooler and
// removes it again.
type Artifact struct {
	Data []byte
	Ext  string // file extension for the temp file, without dot
}

// Converter normalizes heterogeneous job payloads into a printable artifact.
// Label markup goes through the remote rendering service; PDF and raster
// payloads are decoded directly.
type Converter struct {
	endpoint string
	client   *http.Client
	log      *zap.Logger
}

// Rendering target for label markup. 8 dots/mm at 4x6 inch matches the
// thermal stock the stations load.
const (
	renderDensity = "8dpmm"
	renderSize    = "4x6"
)

func NewConverter(endpoint string, timeout time.Duration, log *zap.Logger) *Converter {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Converter{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

// Convert decodes the payload and branches by format. It is idempotent and
// performs no I/O beyond the rendering call for markup formats.
func (c *Converter) Convert(ctx context.Context, format models.Format, payload string) (*Artifact, error) {
	switch format {
	case models.FormatZPL, models.FormatEPL:
		markup, err := decodePayload(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConversionFailed, err)
		}
		pdf, err := c.render(ctx, format, markup)
		if err != nil {
			return nil, err
		}
		return &Artifact{Data: pdf, Ext: "pdf"}, nil

	case models.FormatPDF:
		data, err := decodePayload(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConversionFailed, err)
		}
		return &Artifact{Data: data, Ext: "pdf"}, nil

	case models.FormatImage:
		// Pass-through: the spooler rasterizes images itself. Known
		// simplification, no resizing or format sniffing happens here.
		data, err := decodePayload(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConversionFailed, err)
		}
		return &Artifact{Data: data, Ext: "png"}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// render submits label markup to the rendering service and returns the PDF.
// One attempt, bounded by the client timeout; a slow renderer fails the job
// rather than stalling the batch.
func (c *Converter) render(ctx context.Context, format models.Format, markup []byte) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s/labels/%s/0/", c.endpoint, format, renderDensity, renderSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/pdf")
	req.Header.Set("User-Agent", "warehouse-print-agent/"+models.AgentVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: rendering service: %v", ErrConversionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: rendering service returned %s: %s",
			ErrConversionFailed, resp.Status, strings.TrimSpace(string(body)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading rendered label: %v", ErrConversionFailed, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: rendering service returned an empty document", ErrConversionFailed)
	}

	c.log.Debug("label rendered",
		zap.String("format", string(format)),
		zap.Int("bytes", len(data)))
	return data, nil
}

// decodePayload accepts both a self-describing data URL and a bare base64
// body, as the portal has sent both over time.
func decodePayload(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, fmt.Errorf("payload is empty")
	}

	if strings.HasPrefix(payload, "data:") {
		du, err := dataurl.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("invalid data URL: %v", err)
		}
		return du.Data, nil
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %v", err)
	}
	return data, nil
}
