package config

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"gqlfmt/printer"
)

const configFileName = "gqlfmt."

// Extensions lists the supported config file extensions in lookup order.
var Extensions = []string{"yaml", "yml", "toml", "json", "xml"}

type (
	Config struct {
		XMLName xml.Name `yaml:"-" json:"-" toml:"-" xml:"gqlfmt"`
		Input   Input    `yaml:"input" json:"input" toml:"input" xml:"input"`
		Format  Format   `yaml:"format" json:"format" toml:"format" xml:"format"`
		Server  Server   `yaml:"server" json:"server" toml:"server" xml:"server"`
		Cache   Cache    `yaml:"cache" json:"cache" toml:"cache" xml:"cache"`
	}

	Input struct {
		Paths   []string `yaml:"paths" json:"paths" toml:"paths" xml:"paths>path" validate:"required,min=1,dive,required"`
		Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty" toml:"exclude,omitempty" xml:"exclude>pattern,omitempty" validate:"dive,required,glob"`
	}

	Format struct {
		Indentation          string `yaml:"indentation" json:"indentation" toml:"indentation" xml:"indentation" validate:"required,indentation"`
		MaxLineLength        int    `yaml:"maxLineLength" json:"maxLineLength" toml:"maxLineLength" xml:"maxLineLength" validate:"min=1,max=1000"`
		PreserveComments     bool   `yaml:"preserveComments" json:"preserveComments" toml:"preserveComments" xml:"preserveComments"`
		Pretty               bool   `yaml:"pretty" json:"pretty" toml:"pretty" xml:"pretty"`
		CompactSelectionSets bool   `yaml:"compactSelectionSets" json:"compactSelectionSets" toml:"compactSelectionSets" xml:"compactSelectionSets"`
	}

	Server struct {
		Address string   `yaml:"address" json:"address" toml:"address" xml:"address" validate:"required,hostname_port"`
		Origins []string `yaml:"origins,omitempty" json:"origins,omitempty" toml:"origins,omitempty" xml:"origins>origin,omitempty" validate:"dive,required"`
	}

	Cache struct {
		Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled" xml:"enabled"`
		// MaxAgeDays drops entries not confirmed for that many days. Zero
		// keeps them forever.
		MaxAgeDays int `yaml:"maxAgeDays" json:"maxAgeDays" toml:"maxAgeDays" xml:"maxAgeDays" validate:"min=0"`
	}
)

func New() *Config {
	return &Config{
		Input: Input{
			Paths: []string{"."},
		},
		Format: Format{
			Indentation:      printer.DefaultIndentationStep,
			MaxLineLength:    printer.DefaultMaxLineLength,
			PreserveComments: true,
			Pretty:           true,
		},
		Server: Server{
			Address: "127.0.0.1:8484",
		},
		Cache: Cache{
			Enabled:    true,
			MaxAgeDays: 30,
		},
	}
}

// Load reads the gqlfmt config file of the working directory.
func Load() (Config, error) {
	path, ok := findFile()
	if !ok {
		return Config{}, os.ErrNotExist
	}
	return LoadFile(path)
}

// LoadFile reads and validates the config file at path. Fields missing from
// the file keep their defaults.
func LoadFile(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	decode, ok := decoders[filepath.Ext(path)]
	if !ok {
		return Config{}, fmt.Errorf("unsupported config file %s: %w", path, os.ErrInvalid)
	}

	config := *New()
	// list fields are replaced, not merged with the defaults
	config.Input.Paths = nil
	if err := decode(file, &config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if len(config.Input.Paths) == 0 {
		config.Input.Paths = New().Input.Paths
	}

	return config, config.Validate()
}

func findFile() (string, bool) {
	for _, ext := range Extensions {
		name := configFileName + ext
		if _, err := os.Stat(name); err == nil {
			return name, true
		}
	}
	return "", false
}

var decoders = map[string]func(io.Reader, *Config) error{
	".yaml": func(r io.Reader, c *Config) error { return yaml.NewDecoder(r).Decode(c) },
	".yml":  func(r io.Reader, c *Config) error { return yaml.NewDecoder(r).Decode(c) },
	".toml": func(r io.Reader, c *Config) error {
		_, err := toml.NewDecoder(r).Decode(c)
		return err
	},
	".json": func(r io.Reader, c *Config) error { return json.NewDecoder(r).Decode(c) },
	".xml":  func(r io.Reader, c *Config) error { return xml.NewDecoder(r).Decode(c) },
}

// SaveAs writes the config to gqlfmt.<ext> in the working directory.
func (c Config) SaveAs(ext string) error {
	encode, ok := encoders[ext]
	if !ok {
		return fmt.Errorf("unsupported extension: %s", ext)
	}

	file, err := os.Create(configFileName + ext)
	if err != nil {
		return err
	}
	defer file.Close()
	return encode(file, c)
}

var encoders = map[string]func(io.Writer, Config) error{
	"yaml": encodeYaml,
	"yml":  encodeYaml,
	"toml": func(w io.Writer, c Config) error { return toml.NewEncoder(w).Encode(c) },
	"json": func(w io.Writer, c Config) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(c)
	},
	"xml": func(w io.Writer, c Config) error {
		encoder := xml.NewEncoder(w)
		encoder.Indent("", "  ")
		return encoder.Encode(c)
	},
}

func encodeYaml(w io.Writer, c Config) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(4)
	return encoder.Encode(c)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("indentation", func(fl validator.FieldLevel) bool {
		return strings.Trim(fl.Field().String(), " \t") == ""
	})
	_ = v.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
		return doublestar.ValidatePattern(fl.Field().String())
	})
	return v
}

// Validate reports the first invalid field, named by its config key.
func (c Config) Validate() error {
	err := validate.Struct(c)
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}

	fe := errs[0]
	_, field, _ := strings.Cut(fe.Namespace(), ".")
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "min":
		return fmt.Errorf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Errorf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Errorf("%s is not a valid %s: %v", field, strings.ReplaceAll(fe.Tag(), "_", " "), fe.Value())
	}
}

// PrinterOptions converts the format section into printer options.
func (f Format) PrinterOptions() printer.Options {
	return printer.Options{
		IndentationStep:      f.Indentation,
		MaxLineLength:        f.MaxLineLength,
		PreserveComments:     f.PreserveComments,
		Pretty:               f.Pretty,
		CompactSelectionSets: f.CompactSelectionSets,
	}
}

// MaxAge is MaxAgeDays as a duration.
func (c Cache) MaxAge() time.Duration {
	return time.Duration(c.MaxAgeDays) * 24 * time.Hour
}
