// internal/cli/options.go
package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Output formats for `chopper count`.
const (
	OutputTSV   = "tsv"
	OutputJSONL = "jsonl"
)

// Tree formats for `chopper layout`.
const (
	FormatNewick = "newick"
	FormatJSON   = "json"
)

// Defaults
const (
	DefaultThreads    = 1
	DefaultKmerSize   = 25
	DefaultWindowSize = 25
)

var validate = validator.New()

// CountOptions holds the flags of `chopper count`.
type CountOptions struct {
	DataFile          string `yaml:"-" validate:"required"`
	Threads           int    `yaml:"threads" validate:"min=1"`
	KmerSize          int    `yaml:"kmer_size" validate:"min=1,max=32"`
	WindowSize        int    `yaml:"window_size" validate:"gtefield=KmerSize"`
	DisableMinimizers bool   `yaml:"disable_minimizers"`
	Output            string `yaml:"output" validate:"oneof=tsv jsonl"`
	Progress          bool   `yaml:"progress"`

	Config  string `yaml:"-"`
	Quiet   bool   `yaml:"-"`
	Verbose bool   `yaml:"-"`
}

// LayoutOptions holds the flags of `chopper layout`.
type LayoutOptions struct {
	Matrix string `validate:"required"`
	Names  string
	Format string `validate:"oneof=newick json"`

	Quiet   bool
	Verbose bool
}

// BindCount registers the count flags on fs with their defaults.
func BindCount(fs *pflag.FlagSet, o *CountOptions) {
	fs.StringVar(&o.DataFile, "data-file", "", "cluster table: one 'path<TAB>cluster_id' per line [*]")
	fs.IntVar(&o.Threads, "threads", DefaultThreads, "thread budget; workers = max(1, threads-1)")
	fs.IntVar(&o.KmerSize, "kmer-size", DefaultKmerSize, "k-mer size (1..32)")
	fs.IntVar(&o.WindowSize, "window-size", DefaultWindowSize, "minimizer window in bases (>= kmer-size)")
	fs.BoolVar(&o.DisableMinimizers, "disable-minimizers", false, "count every k-mer instead of window minimizers")
	fs.StringVar(&o.Output, "output", OutputTSV, "output format: tsv | jsonl")
	fs.StringVar(&o.Config, "config", "", "YAML file with default option values")
	fs.BoolVar(&o.Progress, "progress", false, "show a progress bar on stderr")
	fs.BoolVarP(&o.Quiet, "quiet", "q", false, "log errors only")
	fs.BoolVar(&o.Verbose, "verbose", false, "log debug messages")
}

// BindLayout registers the layout flags on fs with their defaults.
func BindLayout(fs *pflag.FlagSet, o *LayoutOptions) {
	fs.StringVar(&o.Matrix, "matrix", "", "whitespace-separated flattened n×n distance matrix ('-' = stdin) [*]")
	fs.StringVar(&o.Names, "names", "", "leaf names, one per line (default: row indices)")
	fs.StringVar(&o.Format, "format", FormatNewick, "tree format: newick | json")
	fs.BoolVarP(&o.Quiet, "quiet", "q", false, "log errors only")
	fs.BoolVar(&o.Verbose, "verbose", false, "log debug messages")
}

// fileConfig mirrors the YAML keys; nil means absent.
type fileConfig struct {
	Threads           *int    `yaml:"threads"`
	KmerSize          *int    `yaml:"kmer_size"`
	WindowSize        *int    `yaml:"window_size"`
	DisableMinimizers *bool   `yaml:"disable_minimizers"`
	Output            *string `yaml:"output"`
	Progress          *bool   `yaml:"progress"`
}

// ApplyConfigFile overlays o.Config onto o. Flags the user set explicitly
// (changed reports them by name) keep their command-line value.
func ApplyConfigFile(o *CountOptions, changed func(name string) bool) error {
	if o.Config == "" {
		return nil
	}
	raw, err := os.ReadFile(o.Config)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrapf(err, "config %s", o.Config)
	}
	if fc.Threads != nil && !changed("threads") {
		o.Threads = *fc.Threads
	}
	if fc.KmerSize != nil && !changed("kmer-size") {
		o.KmerSize = *fc.KmerSize
	}
	if fc.WindowSize != nil && !changed("window-size") {
		o.WindowSize = *fc.WindowSize
	}
	if fc.DisableMinimizers != nil && !changed("disable-minimizers") {
		o.DisableMinimizers = *fc.DisableMinimizers
	}
	if fc.Output != nil && !changed("output") {
		o.Output = *fc.Output
	}
	if fc.Progress != nil && !changed("progress") {
		o.Progress = *fc.Progress
	}
	return nil
}

// Validate checks a fully resolved CountOptions.
func (o CountOptions) Validate() error {
	if o.DisableMinimizers {
		// The window is unused for exact k-mers.
		o.WindowSize = o.KmerSize
	}
	return structErr(validate.Struct(o))
}

// Validate checks a LayoutOptions.
func (o LayoutOptions) Validate() error {
	return structErr(validate.Struct(o))
}

// EffectiveWorkers is the compute worker count for a thread budget: one
// thread is left to the read stage, and at least one worker always runs.
func EffectiveWorkers(threads int) int {
	if threads-1 < 1 {
		return 1
	}
	return threads - 1
}

var flagNames = map[string]string{
	"DataFile":   "--data-file",
	"Threads":    "--threads",
	"KmerSize":   "--kmer-size",
	"WindowSize": "--window-size",
	"Output":     "--output",
	"Matrix":     "--matrix",
	"Format":     "--format",
}

func structErr(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fieldMessage(e))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fieldMessage(e validator.FieldError) string {
	name := flagNames[e.Field()]
	if name == "" {
		name = strings.ToLower(e.Field())
	}
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "min":
		return fmt.Sprintf("%s must be >= %s (got %v)", name, e.Param(), e.Value())
	case "max":
		return fmt.Sprintf("%s must be <= %s (got %v)", name, e.Param(), e.Value())
	case "gtefield":
		return fmt.Sprintf("%s (%v) must be >= %s", name, e.Value(), flagNames[e.Param()])
	case "oneof":
		return fmt.Sprintf("invalid %s %q (want one of: %s)", name, e.Value(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}
