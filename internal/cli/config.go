package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the file and environment configuration of the CLI.
type Config struct {
	Animation AnimationConfig `yaml:"animation" mapstructure:"animation"`
	DB        string          `yaml:"db" mapstructure:"db"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Solver    string          `yaml:"solver" mapstructure:"solver"`
}

// AnimationConfig controls how fast layers turn.
type AnimationConfig struct {
	Speed    float32       `yaml:"speed" mapstructure:"speed"`
	FrameCap time.Duration `yaml:"frame_cap" mapstructure:"frame_cap"`
}

// ServerConfig controls the browser viewer.
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Animation: AnimationConfig{
			Speed:    360,
			FrameCap: 16 * time.Millisecond,
		},
		Server: ServerConfig{Addr: "localhost:8080"},
		Solver: "inverse",
	}
}

const envPrefix = "RUBIK"

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Long: `Write the default configuration to ~/.rubik/config.yaml (or --config).
An existing file is left untouched unless --force is given.`,
		RunE: runConfigInit,
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE:  runConfigShow,
	}

	configForce bool
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".rubik"), nil
}

func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// newViper returns a viper instance holding the defaults, the environment
// and, when present, the config file.
func newViper(path string) (*viper.Viper, error) {
	def := DefaultConfig()

	vp := viper.New()
	vp.SetDefault("animation.speed", def.Animation.Speed)
	vp.SetDefault("animation.frame_cap", def.Animation.FrameCap)
	vp.SetDefault("db", def.DB)
	vp.SetDefault("server.addr", def.Server.Addr)
	vp.SetDefault("solver", def.Solver)

	vp.SetEnvPrefix(envPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	if err := vp.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return vp, nil
}

// loadConfig fills cfg from defaults, file, environment and flags, in
// increasing order of precedence.
func loadConfig(cmd *cobra.Command) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	vp, err := newViper(path)
	if err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("db"); f != nil {
		if err := vp.BindPFlag("db", f); err != nil {
			return err
		}
	}
	if f := cmd.Flags().Lookup("solver"); f != nil {
		if err := vp.BindPFlag("solver", f); err != nil {
			return err
		}
	}
	if f := cmd.Flags().Lookup("addr"); f != nil {
		if err := vp.BindPFlag("server.addr", f); err != nil {
			return err
		}
	}

	var out Config
	if err := vp.Unmarshal(&out); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	cfg = out
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := writeConfig(path, DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func writeConfig(path string, c Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
