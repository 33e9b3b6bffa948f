package client

import (
	"context"
	"fmt"
	"net/url"
)

// Export retrieves every collection as an export document.
func (c *Client) Export(ctx context.Context) (*ExportFormat, error) {
	var result ExportFormat
	if err := c.get(ctx, "/api/v1/export", nil, &result); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	return &result, nil
}

func importQuery(opts ImportOptions) string {
	params := url.Values{}
	if opts.Mode != "" {
		params.Set("mode", string(opts.Mode))
	}
	if opts.DryRun {
		params.Set("dry_run", "true")
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

// Import writes an export document into the store. A payload that fails
// validation returns an *APIError with status 422.
func (c *Client) Import(ctx context.Context, data *ExportFormat, opts ImportOptions) (*ImportResult, error) {
	var result ImportResult
	if err := c.post(ctx, "/api/v1/import"+importQuery(opts), data, &result); err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}

	return &result, nil
}

// ValidateImport checks an export document for consistency errors.
func (c *Client) ValidateImport(ctx context.Context, data *ExportFormat, opts ImportOptions) ([]string, error) {
	var result struct {
		Errors []string `json:"errors"`
		Valid  bool     `json:"valid"`
	}

	if err := c.post(ctx, "/api/v1/import/validate"+importQuery(ImportOptions{Mode: opts.Mode}), data, &result); err != nil {
		return nil, fmt.Errorf("validate import: %w", err)
	}

	return result.Errors, nil
}
