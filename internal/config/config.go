package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/2beens/fitlog/internal/storage"
	"github.com/2beens/fitlog/pkg"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	// data files, relative paths are resolved against DataDir
	DataDir       string `toml:"data_dir"`
	ProfileFile   string `toml:"profile_file"`
	ExercisesFile string `toml:"exercises_file"`
	WorkoutsFile  string `toml:"workouts_file"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	// metrics
	MetricsTextfile string `toml:"metrics_textfile"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Default is used when there is no config file: data files in the
// working directory, info logs to stderr.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the section for env from the TOML file at path.
// A missing file is not an error, Default() is returned instead.
func Load(env, path string) (*Config, error) {
	if _, err := (&Toml{}).Get(env); err != nil {
		return nil, err
	}

	exists, err := pkg.PathExists(path, false)
	if err != nil {
		return nil, fmt.Errorf("check config file %s: %w", path, err)
	}
	if !exists {
		log.Debugf("config file %s not found, using defaults", path)
		return Default(), nil
	}

	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config file %s has no [%s] section", path, strings.ToLower(env))
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = "."
	}
	if c.ProfileFile == "" {
		c.ProfileFile = storage.DefaultProfileFile
	}
	if c.ExercisesFile == "" {
		c.ExercisesFile = storage.DefaultExercisesFile
	}
	if c.WorkoutsFile == "" {
		c.WorkoutsFile = storage.DefaultWorkoutsFile
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) ProfilePath() string {
	return c.resolve(c.ProfileFile)
}

func (c *Config) ExercisesPath() string {
	return c.resolve(c.ExercisesFile)
}

func (c *Config) WorkoutsPath() string {
	return c.resolve(c.WorkoutsFile)
}

func (c *Config) resolve(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(c.DataDir, file)
}
