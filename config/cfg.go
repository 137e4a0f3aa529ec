package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"leaf/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	ViewportConfig struct {
		Width  float64 `yaml:"width" validate:"gt=0"`
		Height float64 `yaml:"height" validate:"gt=0"`
	}

	ReaderConfig struct {
		PageTurnMode      common.PageTurnMode      `yaml:"page_turn_mode" validate:"gte=0"`
		PageTurnDirection common.PageTurnDirection `yaml:"page_turn_direction" validate:"gte=0"`
		Spread            common.SpreadMode        `yaml:"spread" validate:"gte=0"`
		// Fraction of an item or screen which must be covered before the item
		// is taken into account when a page turn picks its target.
		NavigationSnapThreshold float64 `yaml:"navigation_snap_threshold" validate:"gte=0,lte=1"`
		// Same for pages reported by pagination.
		VisibilityThreshold float64 `yaml:"visibility_threshold" validate:"gte=0,lte=1"`
		// How far into the viewport free scroll position is probed to decide
		// which page is predominant.
		TriggerPercentage float64        `yaml:"trigger_percentage" validate:"gte=0,lte=1"`
		PaginationDelay   time.Duration  `yaml:"pagination_delay" validate:"gte=0"`
		Viewport          ViewportConfig `yaml:"viewport"`
	}

	LoaderConfig struct {
		Window         int           `yaml:"window" validate:"gte=0"`
		LoadDebounce   time.Duration `yaml:"load_debounce" validate:"gte=0"`
		UnloadDebounce time.Duration `yaml:"unload_debounce" validate:"gte=0"`
		Concurrency    int           `yaml:"concurrency" validate:"gte=1"`
	}

	BookmarksConfig struct {
		Enable bool   `yaml:"enable"`
		Path   string `yaml:"path" sanitize:"path_clean" validate:"required_if=Enable true"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Reader    ReaderConfig    `yaml:"reader"`
		Loader    LoaderConfig    `yaml:"loader"`
		Bookmarks BookmarksConfig `yaml:"bookmarks"`
		Logging   LoggingConfig   `yaml:"logging"`
		Reporting ReporterConfig  `yaml:"reporting"`
	}
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// Only fields we defined are allowed, so yaml.Unmarshal cannot be used
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration is not valid: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration expands configuration template to get defaults, puts
// values from the file at the given path (if any) on top of them and validates
// the result.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare expands configuration template and returns resulting defaults.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}

// ViewportSize returns configured default viewport as width and height.
func (conf *ReaderConfig) ViewportSize() (float64, float64) {
	return conf.Viewport.Width, conf.Viewport.Height
}
