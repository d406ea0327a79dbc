package sharpmath

import (
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/VrezenStrijder/SharpMath/calculation"
	"github.com/VrezenStrijder/SharpMath/parser"
)

// Config represents the SharpMath configuration
type Config struct {
	Display     DisplayConfig          `yaml:"display"`
	Solver      SolverConfig           `yaml:"solver"`
	Constants   map[string]float64     `yaml:"constants"`
	Functions   map[string]FunctionDef `yaml:"functions"`
	MatrixFiles map[string]string      `yaml:"matrix_files"`
}

// DisplayConfig controls how results and steps are rendered
type DisplayConfig struct {
	Notation  string `yaml:"notation"`   // text or latex
	SortOrder string `yaml:"sort_order"` // descending or ascending
}

// SolverConfig carries solver resource limits
type SolverConfig struct {
	MaxMatrixSize int `yaml:"max_matrix_size"`
}

// FunctionDef declares a custom function for the parser
type FunctionDef struct {
	Arity    int  `yaml:"arity"`
	Variadic bool `yaml:"variadic"`
}

// SortOrder maps the configured order onto the solver enum
func (c *Config) SortOrder() calculation.SortOrder {
	if c.Display.SortOrder == "ascending" {
		return calculation.SortAscending
	}
	return calculation.SortDescending
}

// NewParser builds an infix parser with the configured constants and
// functions registered on top of the defaults
func (c *Config) NewParser() *parser.Parser {
	p := parser.New()
	for name, value := range c.Constants {
		p.RegisterConstant(name, value)
	}
	for name, def := range c.Functions {
		p.RegisterFunction(name, parser.FunctionSpec{Arity: def.Arity, Variadic: def.Variadic})
	}
	return p
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Return default configuration if file doesn't exist
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict mode to detect unknown fields
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	return &config, nil
}

// validateConfig validates the configuration for common errors
func validateConfig(config *Config) error {
	validNotations := map[string]bool{
		"":      true,
		"text":  true,
		"latex": true,
	}
	if !validNotations[config.Display.Notation] {
		return fmt.Errorf("invalid notation %q (valid: text, latex)", config.Display.Notation)
	}

	validOrders := map[string]bool{
		"":           true,
		"descending": true,
		"ascending":  true,
	}
	if !validOrders[config.Display.SortOrder] {
		return fmt.Errorf("invalid sort order %q (valid: descending, ascending)", config.Display.SortOrder)
	}

	if config.Solver.MaxMatrixSize < 0 {
		return fmt.Errorf("max_matrix_size must not be negative, got %d", config.Solver.MaxMatrixSize)
	}

	for name, def := range config.Functions {
		if def.Arity < 0 {
			return fmt.Errorf("function %q has negative arity %d", name, def.Arity)
		}
		if def.Variadic && def.Arity != 0 {
			return fmt.Errorf("function %q cannot be both variadic and fixed-arity", name)
		}
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Notation:  "text",
			SortOrder: "descending",
		},
		Solver: SolverConfig{
			MaxMatrixSize: 10,
		},
	}
}

// applyDefaults fills in missing values
func applyDefaults(config *Config) {
	if config.Display.Notation == "" {
		config.Display.Notation = "text"
	}
	if config.Display.SortOrder == "" {
		config.Display.SortOrder = "descending"
	}
	if config.Solver.MaxMatrixSize == 0 {
		config.Solver.MaxMatrixSize = 10
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	re1 := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re1.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		return os.Getenv(varName)
	})

	return s
}

// expandConfigEnvVars expands environment variables in path-like fields
func expandConfigEnvVars(config *Config) {
	for name, path := range config.MatrixFiles {
		config.MatrixFiles[name] = expandEnvVars(path)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
