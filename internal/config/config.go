package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Scan    ScanConfig    `yaml:"scan" mapstructure:"scan"`
	Git     GitConfig     `yaml:"git" mapstructure:"git"`
	Context ContextConfig `yaml:"context" mapstructure:"context"`
	Handoff HandoffConfig `yaml:"handoff" mapstructure:"handoff"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// ScanConfig configures inventory construction.
type ScanConfig struct {
	ModuleRoots  []string `yaml:"module_roots" mapstructure:"module_roots"`
	ModuleDepth  int      `yaml:"module_depth" mapstructure:"module_depth"`
	MaxFileBytes int64    `yaml:"max_file_bytes" mapstructure:"max_file_bytes"`
}

// GitConfig configures optional history enrichment.
type GitConfig struct {
	Disabled   bool `yaml:"disabled" mapstructure:"disabled"`
	MaxCommits int  `yaml:"max_commits" mapstructure:"max_commits"`
}

// ContextConfig configures the context command defaults.
type ContextConfig struct {
	Budget       string   `yaml:"budget" mapstructure:"budget"`
	Strategy     string   `yaml:"strategy" mapstructure:"strategy"`
	RankBy       string   `yaml:"rank_by" mapstructure:"rank_by"`
	MinCodeLines int      `yaml:"min_code_lines" mapstructure:"min_code_lines"`
	Exclude      []string `yaml:"exclude" mapstructure:"exclude"`
	SoftMaxBytes int64    `yaml:"soft_max_bytes" mapstructure:"soft_max_bytes"`
}

// HandoffConfig configures the handoff command defaults.
type HandoffConfig struct {
	OutDir    string `yaml:"out_dir" mapstructure:"out_dir"`
	TreeDepth int    `yaml:"tree_depth" mapstructure:"tree_depth"`
	MaxRisks  int    `yaml:"max_risks" mapstructure:"max_risks"`
}

// StoreConfig configures the run-history database.
type StoreConfig struct {
	Path     string `yaml:"path" mapstructure:"path"`
	Disabled bool   `yaml:"disabled" mapstructure:"disabled"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName(".srctally")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SRCTALLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("scan.module_depth", 1)
	v.SetDefault("scan.max_file_bytes", 2*1024*1024)
	v.SetDefault("git.disabled", false)
	v.SetDefault("git.max_commits", 500)
	v.SetDefault("context.budget", "128k")
	v.SetDefault("context.strategy", "greedy")
	v.SetDefault("context.rank_by", "code")
	v.SetDefault("context.soft_max_bytes", 4*1024*1024)
	v.SetDefault("handoff.out_dir", ".srctally-handoff")
	v.SetDefault("handoff.tree_depth", 4)
	v.SetDefault("handoff.max_risks", 20)
	v.SetDefault("store.path", ".srctally/runs.db")
	v.SetDefault("store.disabled", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger. Diagnostics go to stderr so
// rendered output on stdout stays clean.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.OutputPaths = []string{"stderr"}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
