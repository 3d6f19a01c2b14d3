package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	convertOut    string
	convertIndent bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Write a file as a GeoJSON FeatureCollection",
	Long: `Convert ingests a CSV, Excel, JSON or GeoJSON file and writes the resulting
FeatureCollection. Output goes to stdout unless -o is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOut, "output", "o", "", "output file (default stdout)")
	convertCmd.Flags().BoolVar(&convertIndent, "indent", false, "indent the JSON output")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	res, err := newIngester().IngestPath(args[0])
	if err != nil {
		return err
	}
	doc, err := res.GeoJSON()
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	var buf bytes.Buffer
	if convertIndent {
		err = json.Indent(&buf, doc, "", "  ")
	} else {
		err = json.Compact(&buf, doc)
	}
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	buf.WriteByte('\n')
	b := buf.Bytes()

	if convertOut == "" {
		_, err = cmd.OutOrStdout().Write(b)
		return err
	}
	if err := os.WriteFile(convertOut, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", convertOut, err)
	}
	log.Info().Str("output", convertOut).Int("features", len(res.Data.Features)).Msg("converted")
	return nil
}
