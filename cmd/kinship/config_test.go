package main

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// resetFlags restores global flag state after each test.
func resetFlags(t *testing.T) {
	t.Helper()
	orig := struct{ url, key, fmt, profile string }{flagURL, flagKey, flagFmt, flagProfile}
	t.Cleanup(func() {
		flagURL = orig.url
		flagKey = orig.key
		flagFmt = orig.fmt
		flagProfile = orig.profile
	})
	flagURL = defaultURL
	flagKey = ""
	flagFmt = "json"
	flagProfile = ""
}

// unsetEnv temporarily unsets an environment variable and restores it on cleanup.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, exists := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if exists {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

// isolate points HOME at a temp dir and clears the KINSHIP_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	resetFlags(t)
	for _, k := range []string{"KINSHIP_URL", "KINSHIP_API_KEY", "KINSHIP_PROFILE"} {
		unsetEnv(t, k)
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeTestConfig(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, ".kinship")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

const twoProfiles = `
active_profile: laptop
profiles:
  default:
    url: http://default:3040
    api_key: default-key
  laptop:
    url: http://laptop:4040
    api_key: laptop-key
`

func TestResolveConfigEnv(t *testing.T) {
	isolate(t)
	t.Setenv("KINSHIP_URL", "http://env-server:9090")
	t.Setenv("KINSHIP_API_KEY", "secret-key-from-env")

	resolveConfig()

	if flagURL != "http://env-server:9090" {
		t.Errorf("flagURL: got %q", flagURL)
	}
	if flagKey != "secret-key-from-env" {
		t.Errorf("flagKey: got %q", flagKey)
	}
}

func TestResolveConfigFlagTakesPrecedence(t *testing.T) {
	home := isolate(t)
	writeTestConfig(t, home, twoProfiles)
	t.Setenv("KINSHIP_URL", "http://env-server:9090")

	flagURL = "http://explicit-flag:1234"
	flagKey = "flag-key"
	resolveConfig()

	if flagURL != "http://explicit-flag:1234" || flagKey != "flag-key" {
		t.Errorf("explicit flags should win; got %q %q", flagURL, flagKey)
	}
}

func TestResolveConfigProfiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		profile string
		wantURL string
		wantKey string
	}{
		{"active profile", twoProfiles, "", "http://laptop:4040", "laptop-key"},
		{"selected profile", twoProfiles, "default", "http://default:3040", "default-key"},
		{"unknown profile", twoProfiles, "missing", defaultURL, ""},
		{"fallback to default", "profiles:\n  default:\n    url: http://d:1\n", "", "http://d:1", ""},
		{"unparseable", "profiles: [", "", defaultURL, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := isolate(t)
			writeTestConfig(t, home, tt.content)

			flagProfile = tt.profile
			resolveConfig()

			if flagURL != tt.wantURL || flagKey != tt.wantKey {
				t.Errorf("got (%q, %q), want (%q, %q)", flagURL, flagKey, tt.wantURL, tt.wantKey)
			}
		})
	}
}

func TestResolveConfigProfileFromEnv(t *testing.T) {
	home := isolate(t)
	writeTestConfig(t, home, twoProfiles)
	t.Setenv("KINSHIP_PROFILE", "default")

	resolveConfig()

	if flagURL != "http://default:3040" {
		t.Errorf("flagURL: got %q", flagURL)
	}
}

func TestWriteConfigKeepsOtherProfiles(t *testing.T) {
	home := isolate(t)
	writeTestConfig(t, home, twoProfiles)

	path, err := writeConfig("work", "http://work:3040", "work-key")
	if err != nil {
		t.Fatalf("writeConfig: %v", err)
	}
	if path != filepath.Join(home, ".kinship", "config.yaml") {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatal(err)
	}

	if cfg.ActiveProfile != "work" || len(cfg.Profiles) != 3 {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.Profiles["laptop"].APIKey != "laptop-key" {
		t.Errorf("existing profile lost: %+v", cfg.Profiles["laptop"])
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
}
