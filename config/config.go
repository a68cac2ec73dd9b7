// Package config loads the colony simulation settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ErrInvalidConfig is returned when a loaded configuration cannot drive a simulation
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the application configuration
type Config struct {
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	TickRateMS     int     `json:"tick_rate_ms"`
	DecayStep      float64 `json:"decay_step"`       // simulated time elapsed per tick
	DefaultDecay   float64 `json:"default_decay"`    // decay for deposits that do not specify one
	MaxTicks       int     `json:"max_ticks"`        // 0 runs until stopped
	MaxSenseRadius int     `json:"max_sense_radius"` // largest radius a gradient request may ask for
	HTTPAddr       string  `json:"http_addr"`
	GRPCAddr       string  `json:"grpc_addr"`
	OutputFile     string  `json:"output_file"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		Width:          32,
		Height:         32,
		TickRateMS:     1000,
		DecayStep:      1.0,
		DefaultDecay:   1.0,
		MaxTicks:       0,
		MaxSenseRadius: 8,
		HTTPAddr:       ":8080",
		GRPCAddr:       ":9090",
		OutputFile:     "grid_output.txt",
	}
}

// TickRate returns the tick interval as a duration
func (c *Config) TickRate() time.Duration {
	return time.Duration(c.TickRateMS) * time.Millisecond
}

// Validate checks that the configuration describes a runnable simulation
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: grid must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.TickRateMS <= 0 {
		return fmt.Errorf("%w: tick_rate_ms must be positive, got %d", ErrInvalidConfig, c.TickRateMS)
	}
	if c.DecayStep < 0 {
		return fmt.Errorf("%w: decay_step must not be negative, got %v", ErrInvalidConfig, c.DecayStep)
	}
	if c.DefaultDecay < 0 {
		return fmt.Errorf("%w: default_decay must not be negative, got %v", ErrInvalidConfig, c.DefaultDecay)
	}
	if c.MaxTicks < 0 {
		return fmt.Errorf("%w: max_ticks must not be negative, got %d", ErrInvalidConfig, c.MaxTicks)
	}
	if c.MaxSenseRadius < 0 {
		return fmt.Errorf("%w: max_sense_radius must not be negative, got %d", ErrInvalidConfig, c.MaxSenseRadius)
	}
	return nil
}

// LoadConfig loads the configuration from a file. When the file does not exist the
// defaults are used, overridden by ANTSIM_* environment variables.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Printf("Config file not found at %s, checking environment variables", configPath)
		if err := applyEnv(config); err != nil {
			return nil, err
		}
		return config, config.Validate()
	}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	log.Println("Configuration loaded successfully")
	return config, nil
}

func applyEnv(config *Config) error {
	ints := map[string]*int{
		"ANTSIM_WIDTH":            &config.Width,
		"ANTSIM_HEIGHT":           &config.Height,
		"ANTSIM_TICK_RATE_MS":     &config.TickRateMS,
		"ANTSIM_MAX_TICKS":        &config.MaxTicks,
		"ANTSIM_MAX_SENSE_RADIUS": &config.MaxSenseRadius,
	}
	for key, dst := range ints {
		raw := os.Getenv(key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, raw, err)
		}
		*dst = v
		log.Printf("Loaded %s from environment variable", key)
	}

	floats := map[string]*float64{
		"ANTSIM_DECAY_STEP":    &config.DecayStep,
		"ANTSIM_DEFAULT_DECAY": &config.DefaultDecay,
	}
	for key, dst := range floats {
		raw := os.Getenv(key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, raw, err)
		}
		*dst = v
		log.Printf("Loaded %s from environment variable", key)
	}

	strs := map[string]*string{
		"ANTSIM_HTTP_ADDR":   &config.HTTPAddr,
		"ANTSIM_GRPC_ADDR":   &config.GRPCAddr,
		"ANTSIM_OUTPUT_FILE": &config.OutputFile,
	}
	for key, dst := range strs {
		if raw, ok := os.LookupEnv(key); ok {
			*dst = raw
		}
	}
	return nil
}

// GetDefaultConfigPath returns the default path for the config file
func GetDefaultConfigPath() string {
	// Get the current executable directory
	execPath, err := os.Executable()
	if err != nil {
		log.Printf("Warning: Could not determine executable path: %v", err)
		return "config.json" // Fallback to current directory
	}

	execDir := filepath.Dir(execPath)
	return filepath.Join(execDir, "config.json")
}

// SaveDefaultConfig creates a default config file if it doesn't exist
func SaveDefaultConfig(configPath string) error {
	// File exists, don't overwrite
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	file, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(DefaultConfig()); err != nil {
		return err
	}

	log.Printf("Created default config file at %s", configPath)
	return nil
}
