package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"toggl-reports/internal/ports"
)

// xlsxMIME is the export target for Google Sheets invoices.
const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var _ ports.InvoiceSource = (*Client)(nil)

// Client downloads the invoice spreadsheet from Google Drive, exported as
// xlsx. The file is expected to be a Google Sheet; Drive converts on export.
type Client struct {
	svc    *gdrive.Service
	fileID string
	log    *slog.Logger
}

// NewClient builds a Drive client authenticated with a service account.
// Credentials resolve as inline JSON first, then a key file path. With
// neither set, Application Default Credentials apply.
func NewClient(ctx context.Context, fileID, credentialsFile string, credentialsJSON []byte, log *slog.Logger) (*Client, error) {
	if fileID == "" {
		return nil, errors.New("drive: missing invoice file id")
	}
	if log == nil {
		log = slog.Default()
	}

	opts := []option.ClientOption{option.WithScopes(gdrive.DriveReadonlyScope)}
	switch {
	case len(credentialsJSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(credentialsJSON))
	case credentialsFile != "":
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("drive: reading credentials file: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(data))
	}

	svc, err := gdrive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive: creating service: %w", err)
	}
	return &Client{svc: svc, fileID: fileID, log: log}, nil
}

// FetchInvoice exports the configured spreadsheet as xlsx and returns its
// bytes. Export is limited to 10 MB by Drive, plenty for an invoice.
func (c *Client) FetchInvoice(ctx context.Context) ([]byte, error) {
	if c.svc == nil {
		return nil, errors.New("drive: service not initialized")
	}

	resp, err := c.svc.Files.Export(c.fileID, xlsxMIME).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("drive: exporting invoice %s: %w", c.fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("drive: reading invoice export: %w", err)
	}
	c.log.Debug("fetched invoice export", "file_id", c.fileID, "bytes", len(data))
	return data, nil
}
