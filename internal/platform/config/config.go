// internal/platform/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"smsdedup/internal/platform/errors"
)

type Config struct {
	// IO
	Inputs  []string
	Output  string
	LogFile string

	// Matching
	DefaultCountryCode string
	IgnoreDateMillis   bool
	IgnoreWhitespace   bool
	Aggressive         bool

	// Runtime
	Workers int
	Quiet   bool
	JSON    bool

	// Meta
	ConfigPath   string
	PrintVersion bool
	PrintHelp    bool
}

// fileConfig es el espejo YAML de Config para el fichero opcional.
type fileConfig struct {
	Inputs             []string `yaml:"inputs"`
	Output             string   `yaml:"output"`
	Log                string   `yaml:"log"`
	DefaultCountryCode string   `yaml:"default_country_code"`
	IgnoreDateMillis   *bool    `yaml:"ignore_date_milliseconds"`
	IgnoreWhitespace   *bool    `yaml:"ignore_whitespace_differences"`
	Aggressive         *bool    `yaml:"aggressive"`
	Workers            *int     `yaml:"workers"`
	Quiet              *bool    `yaml:"quiet"`
	JSON               *bool    `yaml:"json"`
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		DefaultCountryCode: "+1",
		IgnoreDateMillis:   false,
		IgnoreWhitespace:   false,
		Aggressive:         false,
		Workers:            4,
	}
}

// Load inicializa la configuración: defaults -> fichero YAML -> ENV -> FLAGS
// (los flags tienen prioridad).
func Load() (Config, error) {
	return LoadArgs(os.Args[1:])
}

// LoadArgs parsea la configuración a partir de args (sin el nombre del binario).
func LoadArgs(args []string) (Config, error) {
	cfg := DefaultConfig()

	fs := pflag.NewFlagSet("smsdedup", pflag.ContinueOnError)
	fs.Usage = func() {}
	bindFlags(fs, &cfg)

	if err := fs.Parse(args); err != nil {
		return cfg, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	// Ficheros de entrada también como argumentos posicionales
	cfg.Inputs = append(cfg.Inputs, fs.Args()...)

	// Fichero YAML y ENV rellenan solo lo que los flags no fijaron
	if cfg.ConfigPath != "" {
		if err := applyFile(&cfg, fs); err != nil {
			return cfg, err
		}
	}
	loadFromEnv(&cfg, fs)

	normalize(&cfg)

	return cfg, nil
}

// Validate comprueba que la configuración permite ejecutar una pasada.
func (c Config) Validate() error {
	if c.PrintVersion || c.PrintHelp {
		return nil
	}
	if len(c.Inputs) == 0 {
		return errors.Wrap(errors.ErrInvalidInput, "at least one input file is required")
	}
	for _, in := range c.Inputs {
		if strings.TrimSpace(in) == "" {
			return errors.Wrap(errors.ErrInvalidInput, "empty input path")
		}
	}
	return nil
}

// bindFlags registra los flags de CLI sobre cfg.
func bindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringSliceVarP(&cfg.Inputs, "input", "i", nil, "Fichero XML de backup a deduplicar (repetible)")
	fs.StringVarP(&cfg.Output, "output", "o", "", "Fichero XML de salida (default: <input>_deduplicated)")
	fs.StringVarP(&cfg.LogFile, "log", "l", "", "Fichero de log de eliminaciones (default: <input>_deduplication.log)")

	fs.StringVar(&cfg.DefaultCountryCode, "default-country-code", cfg.DefaultCountryCode,
		"Prefijo de país asumido para números sin él")
	fs.BoolVar(&cfg.IgnoreDateMillis, "ignore-date-milliseconds", cfg.IgnoreDateMillis,
		"Comparar timestamps con precisión de segundos")
	fs.BoolVar(&cfg.IgnoreWhitespace, "ignore-whitespace-differences", cfg.IgnoreWhitespace,
		"Colapsar espacios en blanco al comparar cuerpos")
	fs.BoolVar(&cfg.Aggressive, "aggressive", cfg.Aggressive,
		"Emparejamiento agresivo: solo fecha y cuerpo/datos")

	fs.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "Concurrencia máxima al resolver grupos")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", false, "Sin tabla en terminal, solo log")
	fs.BoolVar(&cfg.JSON, "json", false, "Emitir resumen JSON por stdout")

	fs.StringVarP(&cfg.ConfigPath, "config", "c", "", "Fichero de configuración YAML")
	fs.BoolVarP(&cfg.PrintVersion, "version", "v", false, "Imprimir versión y salir")
	fs.BoolVarP(&cfg.PrintHelp, "help", "h", false, "Mostrar esta ayuda")
}

// applyFile vuelca el YAML sobre los campos que los flags no tocaron.
func applyFile(cfg *Config, fs *pflag.FlagSet) error {
	data, err := os.ReadFile(cfg.ConfigPath)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "config file %s: %v", cfg.ConfigPath, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "config file %s: %v", cfg.ConfigPath, err)
	}

	if !fs.Changed("input") && len(cfg.Inputs) == 0 && len(fc.Inputs) > 0 {
		cfg.Inputs = fc.Inputs
	}
	if !fs.Changed("output") && fc.Output != "" {
		cfg.Output = fc.Output
	}
	if !fs.Changed("log") && fc.Log != "" {
		cfg.LogFile = fc.Log
	}
	if !fs.Changed("default-country-code") && fc.DefaultCountryCode != "" {
		cfg.DefaultCountryCode = fc.DefaultCountryCode
	}
	if !fs.Changed("ignore-date-milliseconds") && fc.IgnoreDateMillis != nil {
		cfg.IgnoreDateMillis = *fc.IgnoreDateMillis
	}
	if !fs.Changed("ignore-whitespace-differences") && fc.IgnoreWhitespace != nil {
		cfg.IgnoreWhitespace = *fc.IgnoreWhitespace
	}
	if !fs.Changed("aggressive") && fc.Aggressive != nil {
		cfg.Aggressive = *fc.Aggressive
	}
	if !fs.Changed("workers") && fc.Workers != nil {
		cfg.Workers = *fc.Workers
	}
	if !fs.Changed("quiet") && fc.Quiet != nil {
		cfg.Quiet = *fc.Quiet
	}
	if !fs.Changed("json") && fc.JSON != nil {
		cfg.JSON = *fc.JSON
	}

	return nil
}

// loadFromEnv carga configuración desde variables de entorno.
func loadFromEnv(cfg *Config, fs *pflag.FlagSet) {
	if v := getenv("SMSDEDUP_OUTPUT", ""); v != "" && !fs.Changed("output") {
		cfg.Output = v
	}
	if v := getenv("SMSDEDUP_LOG", ""); v != "" && !fs.Changed("log") {
		cfg.LogFile = v
	}
	if v := getenv("SMSDEDUP_COUNTRY_CODE", ""); v != "" && !fs.Changed("default-country-code") {
		cfg.DefaultCountryCode = v
	}
	if v := getenv("SMSDEDUP_WORKERS", ""); v != "" && !fs.Changed("workers") {
		cfg.Workers = parseInt(v, cfg.Workers)
	}
	if v := getenv("SMSDEDUP_AGGRESSIVE", ""); v != "" && !fs.Changed("aggressive") {
		cfg.Aggressive = parseBool(v)
	}
	if v := getenv("SMSDEDUP_QUIET", ""); v != "" && !fs.Changed("quiet") {
		cfg.Quiet = parseBool(v)
	}
}

func normalize(c *Config) {
	if c.Workers < 1 {
		c.Workers = 1
	}

	c.DefaultCountryCode = strings.TrimSpace(c.DefaultCountryCode)
	if c.DefaultCountryCode != "" && !strings.HasPrefix(c.DefaultCountryCode, "+") {
		c.DefaultCountryCode = "+" + c.DefaultCountryCode
	}

	if len(c.Inputs) > 0 {
		if c.Output == "" {
			c.Output = defaultOutputPath(c.Inputs[0])
		}
		if c.LogFile == "" {
			c.LogFile = defaultLogPath(c.Inputs[0])
		}
	}
}

// defaultOutputPath inserta "_deduplicated" antes de la extensión.
func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(input, ext)
	return fmt.Sprintf("%s_deduplicated%s", stem, ext)
}

// defaultLogPath deriva el fichero de log del primer input.
func defaultLogPath(input string) string {
	stem := strings.TrimSuffix(input, filepath.Ext(input))
	return stem + "_deduplication.log"
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}
