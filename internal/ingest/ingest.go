// Package ingest turns CSV, Excel, JSON and GeoJSON files into a GeoJSON
// FeatureCollection, inferring coordinate columns for tabular input.
package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog"
)

// NativeGeometry is reported as both detected columns when the input was
// already GeoJSON.
const NativeGeometry = "Geometry Object"

// File is an uploaded file: a name for format detection plus its contents.
// *os.File satisfies it.
type File interface {
	Name() string
	io.Reader
}

// Result is a successful ingestion.
type Result struct {
	Data        *geojson.FeatureCollection
	DetectedLat string
	DetectedLon string
	Format      Format

	// Raw is the input document for native GeoJSON. Data is decoded from it
	// but drops what orb does not model (altitudes, foreign members, empty
	// property objects); Raw keeps them. Nil for tabular input.
	Raw json.RawMessage
}

// GeoJSON returns the collection as a GeoJSON document: Raw when the input
// was native, Data marshalled otherwise.
func (r *Result) GeoJSON() ([]byte, error) {
	if r.Raw != nil {
		return r.Raw, nil
	}
	return json.Marshal(r.Data)
}

// Native reports whether the input carried its own geometry.
func (r *Result) Native() bool {
	return r.DetectedLat == NativeGeometry
}

// Ingester runs the pipeline. It holds only immutable options and is safe
// for concurrent use.
type Ingester struct {
	sampleSize int
	log        zerolog.Logger
}

// Option configures an Ingester.
type Option func(*Ingester)

// WithSampleSize sets how many leading records column inference validates.
// Non-positive values keep the default.
func WithSampleSize(n int) Option {
	return func(in *Ingester) {
		if n > 0 {
			in.sampleSize = n
		}
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(in *Ingester) { in.log = l }
}

func New(opts ...Option) *Ingester {
	in := &Ingester{sampleSize: DefaultSampleSize, log: zerolog.Nop()}
	for _, o := range opts {
		o(in)
	}
	return in
}

var defaultIngester = New()

// Ingest runs f through an Ingester with default options.
func Ingest(f File) (*Result, error) {
	return defaultIngester.Ingest(f)
}

// Ingest detects the format from f's name, reads it once and returns the
// canonical collection. The format is checked before anything is read.
func (in *Ingester) Ingest(f File) (*Result, error) {
	name := f.Name()
	if _, err := DetectFormat(name); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, withFile(newError(DecodeFailure, "failed to read file", err), name)
	}
	return in.IngestBytes(name, data)
}

// IngestPath opens and ingests the file at path.
func (in *Ingester) IngestPath(path string) (*Result, error) {
	if _, err := DetectFormat(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, withFile(newError(DecodeFailure, "failed to read file", err), filepath.Base(path))
	}
	defer f.Close()
	return in.Ingest(f)
}

// IngestBytes runs the pipeline over contents already in memory.
func (in *Ingester) IngestBytes(name string, data []byte) (*Result, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}
	log := in.log.With().Str("file", filepath.Base(name)).Str("format", string(format)).Logger()
	log.Debug().Int("bytes", len(data)).Msg("decoding")

	doc, err := decode(format, data)
	if err != nil {
		return nil, withFile(err, name)
	}

	if doc.native != nil {
		if len(doc.native.Features) == 0 {
			return nil, withFile(newError(NoValidRows, "GeoJSON contains no features", nil), name)
		}
		log.Debug().Int("features", len(doc.native.Features)).Msg("native geojson")
		return &Result{
			Data:        doc.native,
			Raw:         doc.raw,
			DetectedLat: NativeGeometry,
			DetectedLon: NativeGeometry,
			Format:      format,
		}, nil
	}

	res, err := in.fromRows(log, doc.rows)
	if err != nil {
		if format == FormatJSON && bytes.HasPrefix(bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM)), []byte("[")) {
			err = arrayError(err)
		}
		return nil, withFile(err, name)
	}
	res.Format = format
	return res, nil
}

func (in *Ingester) fromRows(log zerolog.Logger, rows Rows) (*Result, error) {
	if len(rows.Records) == 0 {
		return nil, newError(NoValidRows, "file contains no data rows", nil)
	}
	cols, err := InferColumns(rows, in.sampleSize)
	if err != nil {
		log.Debug().Strs("columns", rows.Columns).Err(err).Msg("column inference failed")
		return nil, err
	}
	fc, dropped, err := Normalize(rows, cols)
	log.Debug().
		Str("lat", cols.Lat).
		Str("lon", cols.Lon).
		Int("rows", len(rows.Records)).
		Int("dropped", dropped).
		Msg("normalized")
	if err != nil {
		return nil, err
	}
	return &Result{Data: fc, DetectedLat: cols.Lat, DetectedLon: cols.Lon}, nil
}

// arrayError keeps the kind of a JSON array failure but explains what the
// array should have held.
func arrayError(err error) error {
	var ie *Error
	if !errors.As(err, &ie) {
		return err
	}
	out := *ie
	out.Detail = "JSON array must contain objects with valid latitude/longitude fields (e.g. lat/lon)"
	return &out
}
