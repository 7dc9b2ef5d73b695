package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and saves the result
// to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to p5embed! Let's configure your sketch server.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	// 2. Storage backend.
	backendPrompt := promptui.Select{
		Label: "Where should sketches be stored?",
		Items: []string{
			"memory — lost on restart",
			"sqlite — persisted to a local database file",
		},
	}
	backendIdx, _, err := backendPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("backend selection: %w", err)
	}
	backends := []Backend{BackendMemory, BackendSQLite}
	cfg.Store.Backend = backends[backendIdx]

	if cfg.Store.Backend == BackendSQLite {
		pathPrompt := promptui.Prompt{
			Label:   "Database file",
			Default: cfg.Store.Path,
		}
		dbPath, err := pathPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("database path: %w", err)
		}
		cfg.Store.Path = strings.TrimSpace(dbPath)
	}

	// 3. Public base URL.
	basePrompt := promptui.Prompt{
		Label:   "Public base URL (leave blank for localhost)",
		Default: "",
	}
	baseURL, err := basePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}
	cfg.BaseURL = strings.TrimSpace(baseURL)

	// 4. Highlighted code listings.
	highlightPrompt := promptui.Select{
		Label: "Syntax-highlight code listings on embed pages?",
		Items: []string{"no", "yes"},
	}
	highlightIdx, _, err := highlightPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("highlight selection: %w", err)
	}
	cfg.Embed.Highlight = highlightIdx == 1

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(input string) error {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
