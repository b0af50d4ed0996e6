package cli

import (
	"github.com/spf13/viper"

	"github.com/sdkwire/sdkwire/internal/errors"
	"github.com/sdkwire/sdkwire/internal/generator"
)

// ConfigFileName is the default project configuration file, resolved
// relative to the working directory
const ConfigFileName = "sdkwire.json"

// NamingConfig mirrors generator.NamingRules in configuration form
type NamingConfig struct {
	StripClassSuffix string `mapstructure:"stripClassSuffix"`
	FileSuffix       string `mapstructure:"fileSuffix"`
	ExportSuffix     string `mapstructure:"exportSuffix"`
}

// FormatConfig controls the optional formatter pass over generated trees
type FormatConfig struct {
	Skip           bool `mapstructure:"skip"`
	TimeoutSeconds int  `mapstructure:"timeoutSeconds"`
}

// Config is the resolved tool configuration, merged from sdkwire.json and
// command line flags. Flags win.
type Config struct {
	Snapshot string       `mapstructure:"snapshot"`
	Output   string       `mapstructure:"output"`
	Flavors  []string     `mapstructure:"flavors"`
	Naming   NamingConfig `mapstructure:"naming"`
	Format   FormatConfig `mapstructure:"format"`
}

// NewViper returns a viper instance carrying the tool defaults
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("sdkwire")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.SetDefault("snapshot", "sdkwire-snapshot.json")
	v.SetDefault("output", "sdk")
	v.SetDefault("flavors", []string{string(generator.FlavorPlain)})
	v.SetDefault("format.skip", false)
	v.SetDefault("format.timeoutSeconds", 60)
	return v
}

// LoadConfig reads the configuration file (if present), merges flag
// overrides already bound to v, and validates the result.
func LoadConfig(v *viper.Viper, explicitFile string) (*Config, error) {
	if explicitFile != "" {
		v.SetConfigFile(explicitFile)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || explicitFile != "" {
			return nil, errors.Wrap(errors.ConfigurationErrorCode,
				"configuration file could not be read", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ConfigurationErrorCode,
			"configuration does not match the expected shape", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Snapshot == "" {
		return errors.New(errors.ConfigurationErrorCode, "no snapshot file configured").
			WithSuggestion("set \"snapshot\" in sdkwire.json or pass --snapshot")
	}
	if c.Output == "" {
		return errors.New(errors.ConfigurationErrorCode, "no output directory configured").
			WithSuggestion("set \"output\" in sdkwire.json or pass --output")
	}
	if len(c.Flavors) == 0 {
		return errors.New(errors.ConfigurationErrorCode, "no generation flavor configured")
	}
	seen := make(map[generator.Flavor]struct{})
	for _, raw := range c.Flavors {
		flavor, err := generator.ParseFlavor(raw)
		if err != nil {
			return err
		}
		if _, dup := seen[flavor]; dup {
			return errors.Newf(errors.ConfigurationErrorCode,
				"flavor %q is configured twice", raw)
		}
		seen[flavor] = struct{}{}
	}
	if c.Format.TimeoutSeconds <= 0 {
		return errors.New(errors.ConfigurationErrorCode,
			"format.timeoutSeconds must be positive")
	}
	return nil
}

// ParsedFlavors returns the configured flavors in configuration order
func (c *Config) ParsedFlavors() []generator.Flavor {
	flavors := make([]generator.Flavor, len(c.Flavors))
	for i, raw := range c.Flavors {
		flavors[i], _ = generator.ParseFlavor(raw)
	}
	return flavors
}

// GeneratorOptions maps the configuration onto backend options
func (c *Config) GeneratorOptions() generator.Options {
	return generator.Options{
		Naming: generator.NamingRules{
			StripClassSuffix: c.Naming.StripClassSuffix,
			FileSuffix:       c.Naming.FileSuffix,
			ExportSuffix:     c.Naming.ExportSuffix,
		},
	}
}
