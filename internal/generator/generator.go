package generator

import (
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/xll-gen/bundlefile/internal/config"
)

// Job names one file to bundle and the identifiers to declare.
type Job struct {
	Input    string
	Output   string
	Package  string
	Variable string
}

// OptionsFromConfig maps the gen section of the configuration onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := Options{
		ChunkSize: cfg.Gen.ChunkSize,
		Header:    cfg.Gen.Header,
	}
	if cfg.Gen.Atomic != nil {
		opts.InPlace = !*cfg.Gen.Atomic
	}
	return opts
}

// Generate bundles job using the options derived from cfg.
//
// Parameters:
//   - cfg: The configuration, with defaults applied.
//   - job: The input, output and identifiers for the generated file.
//
// Returns:
//   - *Result: What was written.
//   - error: An *Error describing the failing path, or nil.
func Generate(cfg *config.Config, job Job) (*Result, error) {
	opts := OptionsFromConfig(cfg)
	slog.Debug("bundling", "input", job.Input, "output", job.Output,
		"package", job.Package, "variable", job.Variable,
		"chunk_size", opts.ChunkSize, "in_place", opts.InPlace)

	res, err := Bundle(job.Input, job.Output, job.Package, job.Variable, opts)
	if err != nil {
		slog.Debug("bundle failed", "kind", KindOf(err).String(), "error", err)
		return nil, err
	}

	slog.Info("bundled", "input", res.Input, "output", res.Output,
		"bytes", res.Bytes, "size", humanize.IBytes(uint64(res.Bytes)))
	return res, nil
}
