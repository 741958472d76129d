package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	app "github.com/okian/scorecard/internal/app"
	"github.com/okian/scorecard/pkg/logger"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	variant  string
	format   string
	in       string
	out      string
	compress bool
}

func newExportCommand() *cobra.Command {
	var opts exportOptions
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a record file as CSV, PDF or XLSX",
		Long: `Reads a YAML record, applies the same defaults and clamping as the web
form, and writes the export into the output directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := runExport(cmd.Context(), cmd.OutOrStdout(), opts)
			return err
		},
	}
	cmd.Flags().StringVar(&opts.variant, "variant", "", "form variant (default: the file's, else scorecard)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "pdf", "export format: csv, pdf or xlsx")
	cmd.Flags().StringVarP(&opts.in, "in", "i", "", "record YAML file")
	cmd.Flags().StringVarP(&opts.out, "out", "o", ".", "output directory")
	cmd.Flags().BoolVar(&opts.compress, "compress", false, "compress PDF content streams")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

// runExport renders the record offline and returns the written path.
func runExport(ctx context.Context, w io.Writer, opts exportOptions) (string, error) {
	rf, err := LoadRecordFile(opts.in)
	if err != nil {
		return "", err
	}
	v, err := resolveVariant(opts.variant, rf)
	if err != nil {
		return "", err
	}

	log := logger.Named("cli")
	svc := app.New(app.WithLogger(log), app.WithPDFCompression(opts.compress))

	var sessionID string
	for _, name := range rf.EmployeeNames {
		view, err := svc.AddEmployee(ctx, sessionID, v.Slug, name)
		if err != nil {
			return "", err
		}
		sessionID = view.SessionID
	}

	_, art, err := svc.Export(ctx, sessionID, v.Slug, opts.format, rf.Input())
	if err != nil {
		return "", err
	}

	path, err := writeArtifact(opts.out, art.FileName, art.Data)
	if err != nil {
		return "", err
	}
	log.Debug(ctx, "export written", logger.String("path", path), logger.Int("bytes", len(art.Data)))
	fmt.Fprintln(w, path)
	return path, nil
}

func writeArtifact(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteArtifact, err)
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteArtifact, err)
	}
	return path, nil
}
