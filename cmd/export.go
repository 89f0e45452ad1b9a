package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/liftlog/internal/gymlog"
	"github.com/theirongolddev/liftlog/internal/model"
)

// archiveVersion is bumped when the export layout changes.
const archiveVersion = 1

// archive is the export/import file layout.
type archive struct {
	Version int                     `json:"version" yaml:"version"`
	Unit    model.Unit              `json:"unit" yaml:"unit"`
	Presets []string                `json:"presets" yaml:"presets"`
	Logs    map[string]model.DayLog `json:"logs" yaml:"logs"`
	Bills   []model.Bill            `json:"bills,omitempty" yaml:"bills,omitempty"`
}

var (
	flagExportFormat string
	flagImportFormat string
	flagOutput       string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all workouts, presets, and bills as YAML or JSON",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Load an export file, replacing the days it contains",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "yaml", "Output format: yaml or json")
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file (default stdout)")
	importCmd.Flags().StringVarP(&flagImportFormat, "format", "f", "", "Input format: yaml or json (default from extension)")
	rootCmd.AddCommand(exportCmd, importCmd)
}

func encodeArchive(w io.Writer, ar archive, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ar)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ar); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}

func decodeArchive(data []byte, format string) (archive, error) {
	var ar archive
	var err error
	switch strings.ToLower(format) {
	case "json":
		err = json.Unmarshal(data, &ar)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &ar)
	default:
		return ar, fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
	if err != nil {
		return ar, fmt.Errorf("parsing %s: %w", format, err)
	}
	if ar.Version > archiveVersion {
		return ar, fmt.Errorf("archive version %d is newer than supported %d", ar.Version, archiveVersion)
	}
	return ar, nil
}

func runExport(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ar := archive{
		Version: archiveVersion,
		Unit:    a.prefs.Unit(),
		Presets: a.prefs.Presets(),
		Logs:    a.logs.Snapshot(),
		Bills:   a.bills.All(),
	}

	var w io.Writer = os.Stdout
	if flagOutput != "" {
		f, err := os.OpenFile(flagOutput, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("creating %s: %w", flagOutput, err)
		}
		defer f.Close()
		w = f
	}
	if err := encodeArchive(w, ar, flagExportFormat); err != nil {
		return err
	}
	if flagOutput != "" {
		fmt.Fprintf(os.Stderr, "  Exported %d days to %s\n", len(ar.Logs), flagOutput)
	}
	return nil
}

func runImport(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	format := flagImportFormat
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(args[0]), ".")
	}
	ar, err := decodeArchive(data, format)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := gymlog.Import(a.logs, ar.Logs)
	if err != nil {
		return err
	}
	for _, p := range ar.Presets {
		if _, err := a.prefs.AddPreset(p); err != nil && !errors.Is(err, gymlog.ErrEmptyName) {
			return err
		}
	}
	if ar.Unit.Valid() {
		if err := a.prefs.SetUnit(ar.Unit); err != nil {
			return err
		}
	}
	if len(ar.Bills) > 0 {
		if err := a.bills.Replace(ar.Bills); err != nil {
			return err
		}
	}

	fmt.Printf("  Imported %d days, %d presets, %d bills\n", n, len(ar.Presets), len(ar.Bills))
	return nil
}
