package cli

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"geomap/internal/export"
	"geomap/internal/geom"
)

var (
	exportOut        string
	exportTitle      string
	exportFields     string
	exportColorField string
	exportPalette    string
	exportBasemap    string
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write a self-contained HTML map of a file",
	Long: `Export ingests a file and writes a standalone Leaflet map page with popups
for the chosen fields and, when a color field is set, a categorical legend.

Palettes: ` + strings.Join(export.PaletteNames(), ", ") + `
Basemaps: ` + strings.Join(export.BasemapNames(), ", "),
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVarP(&exportOut, "output", "o", "", "output file (default derived from the title)")
	f.StringVar(&exportTitle, "title", "", "map title (default the file name)")
	f.StringVar(&exportFields, "fields", "", "comma-separated popup fields (default the first fields)")
	f.StringVar(&exportColorField, "color-field", "", "field whose values color the features")
	f.StringVar(&exportPalette, "palette", "", "color palette (default from config)")
	f.StringVar(&exportBasemap, "basemap", "", "initial basemap (default from config)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	res, err := newIngester().IngestPath(args[0])
	if err != nil {
		return err
	}
	universe := geom.Fields(res.Data)

	title := strings.TrimSpace(exportTitle)
	if title == "" {
		title = export.TitleFor(args[0])
	}
	fields := splitFields(exportFields)
	if fields == nil {
		fields = export.DefaultFields(res.Data, cfg.Export.MaxFields)
	}
	for _, f := range fields {
		if !slices.Contains(universe, f) {
			return fmt.Errorf("unknown field %q (available: %s)", f, strings.Join(universe, ", "))
		}
	}
	if exportColorField != "" && !slices.Contains(universe, exportColorField) {
		return fmt.Errorf("unknown color field %q (available: %s)", exportColorField, strings.Join(universe, ", "))
	}
	opts := export.Options{
		Title:      title,
		Fields:     fields,
		ColorField: exportColorField,
		Palette:    firstNonEmpty(exportPalette, cfg.Export.Palette),
		Basemap:    firstNonEmpty(exportBasemap, cfg.Export.Basemap),
		Document:   res.Raw,
	}

	var buf bytes.Buffer
	if err := export.WriteHTML(&buf, res.Data, opts); err != nil {
		return err
	}
	out := exportOut
	if out == "" {
		out = export.FileName(title)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	log.Info().Str("output", out).Int("features", len(res.Data.Features)).Msg("exported")
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d features)\n", out, len(res.Data.Features))
	return nil
}

func splitFields(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
