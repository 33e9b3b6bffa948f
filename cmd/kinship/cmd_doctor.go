package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kinshiphq/kinship/client"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and connectivity",
		Long:  "Run diagnostic checks against config, server, storage and auth",
		RunE: func(cmd *cobra.Command, args []string) error {
			results := runChecks(cmd.Context())
			if !printChecks(results) {
				return fmt.Errorf("doctor found issues")
			}
			return nil
		},
	}
}

type checkResult struct {
	Name   string
	Passed bool
	Detail string
	Hint   string
}

// runChecks runs after resolveConfig, so flagURL and flagKey hold the
// effective settings.
func runChecks(ctx context.Context) []checkResult {
	var results []checkResult

	cfgPath, _, cfgErr := loadConfig()
	switch {
	case cfgErr == nil:
		results = append(results, checkResult{Name: "Config file", Passed: true, Detail: fmt.Sprintf("found (%s)", cfgPath)})
	case os.IsNotExist(cfgErr) && (os.Getenv("KINSHIP_URL") != "" || flagURL != defaultURL):
		results = append(results, checkResult{Name: "Config file", Passed: true, Detail: "not used (settings from flags or env)"})
	default:
		results = append(results, checkResult{Name: "Config file", Passed: false, Detail: cfgPath, Hint: "Run: kinship init"})
	}

	results = append(results, checkResult{Name: "Server URL", Passed: true, Detail: flagURL})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c := client.New(flagURL, client.WithAPIKey(flagKey))

	health, err := c.Health(ctx)
	if err != nil {
		return append(results, checkResult{
			Name: "Server reachable", Passed: false, Detail: flagURL,
			Hint: fmt.Sprintf("Is kinship-server running?\n   Error: %v", err),
		})
	}
	results = append(results, checkResult{
		Name: "Server reachable", Passed: true,
		Detail: fmt.Sprintf("%s, %s storage, %d live clients", health.Version, health.Storage, health.LiveClients),
	})

	if ready, err := c.Ready(ctx); err != nil {
		results = append(results, checkResult{
			Name: "Storage", Passed: false,
			Hint: fmt.Sprintf("The server cannot reach its storage backend. Error: %v", err),
		})
	} else {
		results = append(results, checkResult{Name: "Storage", Passed: true, Detail: ready.Checks["storage"]})
	}

	switch _, err := c.Contacts.List(ctx, nil); {
	case err == nil && flagKey == "":
		results = append(results, checkResult{Name: "Authentication", Passed: true, Detail: "not required"})
	case err == nil:
		results = append(results, checkResult{Name: "Authentication", Passed: true, Detail: "valid"})
	case client.IsUnauthorized(err):
		results = append(results, checkResult{
			Name: "Authentication", Passed: false,
			Hint: "Set --api-key, KINSHIP_API_KEY, or run kinship init",
		})
	default:
		results = append(results, checkResult{
			Name: "Authentication", Passed: false,
			Hint: fmt.Sprintf("Unexpected error: %v", err),
		})
	}

	return results
}

// printChecks reports results and whether all of them passed.
func printChecks(results []checkResult) bool {
	fmt.Println("\nKinship Doctor")
	fmt.Println("==============")
	fmt.Println()

	allPassed := true
	for _, r := range results {
		mark := "✅"
		if !r.Passed {
			mark = "❌"
			allPassed = false
		}
		if r.Detail != "" {
			fmt.Printf("%s %s: %s\n", mark, r.Name, r.Detail)
		} else {
			fmt.Printf("%s %s\n", mark, r.Name)
		}
		if !r.Passed && r.Hint != "" {
			fmt.Printf("   Hint: %s\n", r.Hint)
		}
	}

	fmt.Println()
	if allPassed {
		fmt.Println("✅ All checks passed!")
	} else {
		fmt.Println("❌ Some checks failed.")
	}

	return allPassed
}
