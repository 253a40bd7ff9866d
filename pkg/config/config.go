package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mdewilde/treecomp/pkg/models"
)

// ExtensionPair declares two file extensions as equivalent for name
// matching (e.g. .js and .ts). The pair is unordered.
type ExtensionPair [2]string

// Normalized returns both extensions lower-cased with a leading dot
func (p ExtensionPair) Normalized() (string, string) {
	return normalizeExt(p[0]), normalizeExt(p[1])
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// CompareConfig holds the equivalence policy for one comparison run
type CompareConfig struct {
	// CompareContent enables the content-equivalence check; when false,
	// matched pairs are classified by presence alone
	CompareContent bool `yaml:"compare_content"`

	// IgnoreLineEnding treats CRLF and LF as equal
	IgnoreLineEnding bool `yaml:"ignore_line_ending"`

	// IgnoreWhiteSpaces trims leading/trailing whitespace per line
	IgnoreWhiteSpaces bool `yaml:"ignore_whitespace"`

	// IgnoreAllWhiteSpaces ignores all whitespace differences; strictly
	// more aggressive than IgnoreWhiteSpaces
	IgnoreAllWhiteSpaces bool `yaml:"ignore_all_whitespace"`

	// IgnoreEmptyLines drops blank lines before positional comparison
	IgnoreEmptyLines bool `yaml:"ignore_empty_lines"`

	// IgnoreFileNameCase makes name matching case-insensitive
	IgnoreFileNameCase bool `yaml:"ignore_filename_case"`

	// IgnoreExtension lists extension pairs treated as equivalent
	IgnoreExtension []ExtensionPair `yaml:"ignore_extension"`

	// Include restricts the comparison to matching relative paths
	Include []string `yaml:"include"`

	// Exclude skips matching relative paths entirely
	Exclude []string `yaml:"exclude"`

	// ShowIdentical materializes the identical partition in the result
	ShowIdentical bool `yaml:"show_identical"`
}

// ValidateExtensionPairs enforces that every extension appears in at
// most one declared pair across the whole set
func (c CompareConfig) ValidateExtensionPairs() error {
	seen := make(map[string]bool)
	for _, pair := range c.IgnoreExtension {
		a, b := pair.Normalized()
		if a == "" || b == "" {
			return &models.ConfigurationError{
				Field:   "ignore_extension",
				Message: fmt.Sprintf("pair [%s, %s] has an empty extension", pair[0], pair[1]),
			}
		}
		if a == b {
			return &models.ConfigurationError{
				Field:   "ignore_extension",
				Message: fmt.Sprintf("pair declares %s equivalent to itself", a),
			}
		}
		for _, ext := range []string{a, b} {
			if seen[ext] {
				return &models.ConfigurationError{
					Field:   "ignore_extension",
					Message: fmt.Sprintf("extension %s appears in more than one pair", ext),
				}
			}
			seen[ext] = true
		}
	}
	return nil
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	MaxWorkers     int   `yaml:"max_workers" validate:"min=1"`
	BufferSize     int   `yaml:"buffer_size" validate:"min=1024"`
	BandwidthLimit int64 `yaml:"bandwidth_limit" validate:"min=0"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format" validate:"oneof=human json"`
	Progress bool   `yaml:"progress"`
	Quiet    bool   `yaml:"quiet"`
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Level      string `yaml:"level" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format" validate:"oneof=console json"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"min=0"`
	MaxBackups int    `yaml:"max_backups" validate:"min=0"`
}

// Config is the immutable application configuration. All recognized
// options are enumerated here and defaulted at construction; slices are
// never nil at consumption time.
type Config struct {
	Compare     CompareConfig     `yaml:"compare"`
	Performance PerformanceConfig `yaml:"performance"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Compare: CompareConfig{
			CompareContent:     true,
			IgnoreFileNameCase: true,
			IgnoreExtension:    []ExtensionPair{},
			Include:            []string{},
			Exclude:            []string{},
		},
		Performance: PerformanceConfig{
			MaxWorkers:     5,
			BufferSize:     65536,
			BandwidthLimit: 0,
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  50,
			MaxBackups: 3,
		},
	}
}

// normalize substitutes empty slices for nil ones so consumers never
// see a null array
func (c *Config) normalize() {
	if c.Compare.IgnoreExtension == nil {
		c.Compare.IgnoreExtension = []ExtensionPair{}
	}
	if c.Compare.Include == nil {
		c.Compare.Include = []string{}
	}
	if c.Compare.Exclude == nil {
		c.Compare.Exclude = []string{}
	}
}

// Validate checks field constraints and the extension-pair uniqueness
// rule. It runs before any I/O.
func (c *Config) Validate() error {
	c.normalize()

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return &models.ConfigurationError{
				Field:   first.Namespace(),
				Message: fmt.Sprintf("failed %q constraint", first.Tag()),
			}
		}
		return err
	}

	return c.Compare.ValidateExtensionPairs()
}

var validate = validator.New()
