package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kinshiphq/kinship/client"
	"github.com/kinshiphq/kinship/internal/models"
)

func newExportCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all contacts, relationships and journal entries to a JSON file",
		Long: `Export every collection to a portable JSON file.
Use 'kinship import' to restore it into the same or another server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := apiClient.Export(cmd.Context())
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			out, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("marshalling export: %w", err)
			}

			if outputPath == "" {
				outputPath = fmt.Sprintf("kinship-export-%s.json",
					time.Now().UTC().Format("20060102T150405Z"))
			}

			if outputPath == "-" {
				_, err = os.Stdout.Write(out)
				return err
			}

			if err := os.WriteFile(outputPath, out, 0o600); err != nil {
				return fmt.Errorf("writing export file: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Exported %d contacts, %d relationships, %d journal entries to %s\n",
				data.Stats.ContactCount, data.Stats.RelationshipCount, data.Stats.JournalCount, outputPath)

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: kinship-export-<timestamp>.json, use - for stdout)")

	return cmd
}

func readExport(path string) (*client.ExportFormat, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var data client.ExportFormat
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &data, nil
}

func newImportCmd() *cobra.Command {
	var (
		mode         string
		dryRun       bool
		validateOnly bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import an export file",
		Long: `Import a file produced by 'kinship export'.
--mode=merge (default) keeps existing records and overwrites those with the
same id; --mode=replace discards the current collections first. A payload
with consistency errors is rejected and nothing is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := client.ImportOptions{Mode: models.ImportMode(mode), DryRun: dryRun}
			if !opts.Mode.Valid() {
				return fmt.Errorf("invalid --mode %q: want merge or replace", mode)
			}

			data, err := readExport(args[0])
			if err != nil {
				return err
			}

			if validateOnly {
				problems, err := apiClient.ValidateImport(cmd.Context(), data, opts)
				if err != nil {
					return err
				}
				for _, p := range problems {
					fmt.Println(p)
				}
				if len(problems) > 0 {
					return fmt.Errorf("%d problems found", len(problems))
				}
				fmt.Fprintln(os.Stderr, "valid")
				return nil
			}

			result, err := apiClient.Import(cmd.Context(), data, opts)
			if err != nil {
				var apiErr *client.APIError
				if errors.As(err, &apiErr) && apiErr.StatusCode == 422 {
					fmt.Fprintln(os.Stderr, apiErr.Message)
					return errors.New("import rejected: payload has consistency errors")
				}
				return err
			}

			if flagFmt == "table" {
				formatTable([]string{"COLLECTION", "CREATED", "UPDATED"}, [][]string{
					{"contacts", fmt.Sprint(result.ContactsCreated), fmt.Sprint(result.ContactsUpdated)},
					{"relationships", fmt.Sprint(result.RelationshipsCreated), fmt.Sprint(result.RelationshipsUpdated)},
					{"journal", fmt.Sprint(result.JournalCreated), fmt.Sprint(result.JournalUpdated)},
				})
				if result.RelationshipsSkipped > 0 {
					fmt.Printf("\n%d relationships skipped\n", result.RelationshipsSkipped)
				}
				return nil
			}
			return output(result, fmt.Sprint(result.ContactsCreated+result.ContactsUpdated))
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(models.ImportMerge), "merge|replace")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing")
	cmd.Flags().BoolVar(&validateOnly, "validate-only", false, "Only check the file for consistency errors")

	return cmd
}
