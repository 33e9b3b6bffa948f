// Command kinship is the command-line client for a kinship server.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kinshiphq/kinship/client"
)

// Build-time variables set via ldflags.
var (
	version   = "0.1.0"
	commit    = ""
	buildDate = ""
)

const defaultURL = "http://localhost:3040"

var (
	apiClient   *client.Client
	flagURL     string
	flagKey     string
	flagFmt     string
	flagProfile string
)

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("kinship version %s (commit: %s, built: %s)", version, commit, buildDate)
	}
	return fmt.Sprintf("kinship version %s-dev", version)
}

// profileConfig holds connection settings for a single profile.
type profileConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

// configFile is the structure of ~/.kinship/config.yaml.
type configFile struct {
	Profiles      map[string]profileConfig `yaml:"profiles"`
	ActiveProfile string                   `yaml:"active_profile"`
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "kinship",
		Short:   "Kinship CLI: a private journal of the people in your life",
		Version: versionString(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			resolveConfig()
			opts := []client.Option{client.WithUserAgent("kinship-cli/" + version)}
			if flagKey != "" {
				opts = append(opts, client.WithAPIKey(flagKey))
			}
			apiClient = client.New(flagURL, opts...)
		},
		SilenceUsage: true,
	}
	root.SetVersionTemplate("{{.Version}}\n")

	root.PersistentFlags().StringVar(&flagURL, "url", defaultURL, "Kinship server URL (env: KINSHIP_URL)")
	root.PersistentFlags().StringVar(&flagKey, "api-key", "", "API key (env: KINSHIP_API_KEY)")
	root.PersistentFlags().StringVarP(&flagFmt, "format", "f", "json", "Output format: json|table|quiet")
	root.PersistentFlags().StringVar(&flagProfile, "profile", "", "Config profile (env: KINSHIP_PROFILE)")

	initCmd := newInitCmd()
	initCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {} // skip client setup

	root.AddCommand(initCmd)
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newContactCmd())
	root.AddCommand(newRelCmd())
	root.AddCommand(newJournalCmd())
	root.AddCommand(newGraphCmd())
	root.AddCommand(newAnalyticsCmd())
	root.AddCommand(newDashboardCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newWatchCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".kinship", "config.yaml"), nil
}

// loadConfig reads the config file. A missing file is not an error.
func loadConfig() (string, *configFile, error) {
	path, err := configPath()
	if err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return path, nil, err
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return path, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return path, &cfg, nil
}

// profile returns the selected profile, if the file defines it.
func (c *configFile) profile(name string) (profileConfig, bool) {
	if c == nil || c.Profiles == nil {
		return profileConfig{}, false
	}
	if name == "" {
		name = c.ActiveProfile
	}
	if name == "" {
		name = "default"
	}
	p, ok := c.Profiles[name]
	return p, ok
}

// resolveConfig fills flagURL and flagKey. Flags take precedence, then env,
// then the config file.
func resolveConfig() {
	if flagURL == defaultURL {
		if v := os.Getenv("KINSHIP_URL"); v != "" {
			flagURL = v
		}
	}
	if flagKey == "" {
		flagKey = os.Getenv("KINSHIP_API_KEY")
	}
	if flagProfile == "" {
		flagProfile = os.Getenv("KINSHIP_PROFILE")
	}

	_, cfg, err := loadConfig()
	if err != nil {
		return
	}
	p, ok := cfg.profile(flagProfile)
	if !ok {
		return
	}
	if flagURL == defaultURL && p.URL != "" {
		flagURL = p.URL
	}
	if flagKey == "" && p.APIKey != "" {
		flagKey = p.APIKey
	}
}
