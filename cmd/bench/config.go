package main

import (
	"flag"
	"os"
	"time"

	"github.com/jmgilman/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/ahira-justice/caching/policy"
	"github.com/ahira-justice/caching/policy/fifo"
	"github.com/ahira-justice/caching/policy/lfu"
	"github.com/ahira-justice/caching/policy/mru"
	"github.com/ahira-justice/caching/policy/random"
	"github.com/ahira-justice/caching/policy/strict"
)

// workload describes one benchmark run. It can be loaded from YAML with
// -config; flags set explicitly on the command line override file values.
type workload struct {
	Limit     int64         `yaml:"limit"`
	Policy    string        `yaml:"policy"`
	ValueSize int           `yaml:"value_size"`
	TTL       time.Duration `yaml:"ttl"`

	Workers  int           `yaml:"workers"`
	Duration time.Duration `yaml:"duration"`
	Reads    int           `yaml:"reads"`

	Keys    int     `yaml:"keys"`
	ZipfS   float64 `yaml:"zipf_s"`
	ZipfV   float64 `yaml:"zipf_v"`
	Seed    int64   `yaml:"seed"`
	Preload int     `yaml:"preload"`

	PprofAddr   string `yaml:"pprof"`
	MetricsAddr string `yaml:"http"`
	Debug       bool   `yaml:"debug"`
}

// bind registers one flag per workload field, using w's current values as defaults.
func (w *workload) bind(fs *flag.FlagSet) {
	fs.Int64Var(&w.Limit, "limit", w.Limit, "cache byte budget")
	fs.StringVar(&w.Policy, "policy", w.Policy, "eviction policy: none | random | fifo | lfu | mru")
	fs.IntVar(&w.ValueSize, "value_size", w.ValueSize, "payload size in bytes")
	fs.DurationVar(&w.TTL, "ttl", w.TTL, "per-entry TTL for writes (0 = none)")

	fs.IntVar(&w.Workers, "workers", w.Workers, "number of worker goroutines")
	fs.DurationVar(&w.Duration, "duration", w.Duration, "benchmark duration")
	fs.IntVar(&w.Reads, "reads", w.Reads, "read percentage [0..100]")

	fs.IntVar(&w.Keys, "keys", w.Keys, "keyspace size")
	fs.Float64Var(&w.ZipfS, "zipf_s", w.ZipfS, "Zipf s > 1 (skew)")
	fs.Float64Var(&w.ZipfV, "zipf_v", w.ZipfV, "Zipf v")
	fs.Int64Var(&w.Seed, "seed", w.Seed, "random seed")
	fs.IntVar(&w.Preload, "preload", w.Preload, "preload entries (0 = fill half the budget)")

	fs.StringVar(&w.PprofAddr, "pprof", w.PprofAddr, "serve pprof at addr (e.g. :6060); empty = disabled")
	fs.StringVar(&w.MetricsAddr, "http", w.MetricsAddr, "serve Prometheus metrics at addr; empty = disabled")
	fs.BoolVar(&w.Debug, "debug", w.Debug, "log evictions and rejections")
}

// loadFile decodes path into w. Only keys present in the file are changed.
func (w *workload) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapWithContext(err, errors.CodeNotFound, "read workload file", map[string]interface{}{"path": path})
	}
	if err := yaml.Unmarshal(data, w); err != nil {
		return errors.WrapWithContext(err, errors.CodeInvalidConfig, "decode workload file", map[string]interface{}{"path": path})
	}
	return nil
}

// validate checks ranges that would make the run meaningless.
func (w *workload) validate() error {
	switch {
	case w.Limit <= 0:
		return errors.New(errors.CodeInvalidConfig, "limit must be > 0")
	case w.ValueSize <= 0:
		return errors.New(errors.CodeInvalidConfig, "value_size must be > 0")
	case w.Reads < 0 || w.Reads > 100:
		return errors.New(errors.CodeInvalidConfig, "reads must be within [0, 100]")
	case w.Keys < 1:
		return errors.New(errors.CodeInvalidConfig, "keys must be >= 1")
	case w.ZipfS <= 1:
		return errors.New(errors.CodeInvalidConfig, "zipf_s must be > 1")
	case w.ZipfV < 1:
		return errors.New(errors.CodeInvalidConfig, "zipf_v must be >= 1")
	case w.TTL < 0:
		return errors.New(errors.CodeInvalidConfig, "ttl must be >= 0")
	}
	if _, err := policyByName(w.Policy, uint64(w.Seed)); err != nil {
		return err
	}
	if w.Workers <= 0 {
		w.Workers = 1
	}
	return nil
}

func policyByName(name string, seed uint64) (policy.Policy, error) {
	switch name {
	case strict.Name, "":
		return strict.New(), nil
	case random.Name:
		return random.NewSeeded(seed), nil
	case fifo.Name:
		return fifo.New(), nil
	case lfu.Name:
		return lfu.New(), nil
	case mru.Name:
		return mru.New(), nil
	default:
		return nil, errors.Newf(errors.CodeInvalidConfig, "unknown policy %q (use none, random, fifo, lfu or mru)", name)
	}
}

// parseWorkload resolves defaults, then the optional -config file, then
// explicitly set flags.
func parseWorkload(fs *flag.FlagSet, args []string, defaults workload) (workload, error) {
	w := defaults
	var cfgPath string
	fs.StringVar(&cfgPath, "config", "", "YAML workload file")
	w.bind(fs)
	if err := fs.Parse(args); err != nil {
		return w, err
	}
	if cfgPath == "" {
		return w, w.validate()
	}

	// Re-apply explicit flags on top of the file.
	fromFlags := w
	if err := w.loadFile(cfgPath); err != nil {
		return w, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			return
		}
		override(&w, &fromFlags, f.Name)
	})
	return w, w.validate()
}

func override(dst, src *workload, name string) {
	switch name {
	case "limit":
		dst.Limit = src.Limit
	case "policy":
		dst.Policy = src.Policy
	case "value_size":
		dst.ValueSize = src.ValueSize
	case "ttl":
		dst.TTL = src.TTL
	case "workers":
		dst.Workers = src.Workers
	case "duration":
		dst.Duration = src.Duration
	case "reads":
		dst.Reads = src.Reads
	case "keys":
		dst.Keys = src.Keys
	case "zipf_s":
		dst.ZipfS = src.ZipfS
	case "zipf_v":
		dst.ZipfV = src.ZipfV
	case "seed":
		dst.Seed = src.Seed
	case "preload":
		dst.Preload = src.Preload
	case "pprof":
		dst.PprofAddr = src.PprofAddr
	case "http":
		dst.MetricsAddr = src.MetricsAddr
	case "debug":
		dst.Debug = src.Debug
	}
}
