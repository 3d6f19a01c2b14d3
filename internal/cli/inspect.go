package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"geomap/internal/geom"
	"geomap/internal/ingest"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show detected columns, feature count, extent and fields of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print machine-readable JSON")
	rootCmd.AddCommand(inspectCmd)
}

type summary struct {
	File        string        `json:"file"`
	Format      ingest.Format `json:"format"`
	DetectedLat string        `json:"detectedLat"`
	DetectedLon string        `json:"detectedLon"`
	Features    int           `json:"features"`
	BBox        []float64     `json:"bbox,omitempty"`
	Fields      []string      `json:"fields"`
}

func summarize(path string, res *ingest.Result) summary {
	s := summary{
		File:        filepath.Base(path),
		Format:      res.Format,
		DetectedLat: res.DetectedLat,
		DetectedLon: res.DetectedLon,
		Features:    len(res.Data.Features),
		Fields:      geom.Fields(res.Data),
	}
	if s.Fields == nil {
		s.Fields = []string{}
	}
	if d, err := geom.FromCollection(res.Data); err == nil {
		s.BBox = []float64{d.BBox.MinX, d.BBox.MinY, d.BBox.MaxX, d.BBox.MaxY}
	}
	return s
}

func runInspect(cmd *cobra.Command, args []string) error {
	res, err := newIngester().IngestPath(args[0])
	if err != nil {
		return err
	}
	s := summarize(args[0], res)
	out := cmd.OutOrStdout()

	if inspectJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	fmt.Fprintf(out, "file:      %s\n", s.File)
	fmt.Fprintf(out, "format:    %s\n", s.Format)
	fmt.Fprintf(out, "latitude:  %s\n", s.DetectedLat)
	fmt.Fprintf(out, "longitude: %s\n", s.DetectedLon)
	fmt.Fprintf(out, "features:  %d\n", s.Features)
	if s.BBox != nil {
		fmt.Fprintf(out, "bbox:      [%g, %g, %g, %g]\n", s.BBox[0], s.BBox[1], s.BBox[2], s.BBox[3])
	}
	fmt.Fprintf(out, "fields:    %s\n", strings.Join(s.Fields, ", "))
	return nil
}
