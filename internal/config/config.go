// Package config provides configuration loaders for the application. All
// settings come from the Viper-managed config file (or REVSHEET_ env
// vars), with direct environment-variable fallbacks for secrets so the
// tool can run from a crontab with nothing but env configured.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/engine"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/mail"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/model"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/sheets"
)

// Default subject phrases, matching the extracts' email subjects.
const (
	DefaultUpcomingSubject  = "Upcoming Revenue for Retail Excel Dashboard"
	DefaultCompletedSubject = "Completed Revenue for Retail Excel Dashboard"
)

// LoadSheetsConfig loads Google Sheets configuration. Precedence:
// 1. Viper configuration (config file or REVSHEET_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Defaults
func LoadSheetsConfig() (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	if v := viper.GetString("sheets.service_account_path"); v != "" {
		config.ServiceAccountPath = ExpandPath(v)
	}
	if v := viper.GetString("sheets.client_id"); v != "" {
		config.ClientID = v
	}
	if v := viper.GetString("sheets.client_secret"); v != "" {
		config.ClientSecret = v
	}
	if v := viper.GetString("sheets.refresh_token"); v != "" {
		config.RefreshToken = v
	}
	if v := viper.GetString("sheets.spreadsheet_id"); v != "" {
		config.SpreadsheetID = v
	}

	if config.ServiceAccountPath == "" {
		if v := os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"); v != "" {
			config.ServiceAccountPath = ExpandPath(v)
		}
	}
	if config.ClientID == "" {
		config.ClientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if config.ClientSecret == "" {
		config.ClientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}
	if config.RefreshToken == "" {
		config.RefreshToken = os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN")
	}
	if config.SpreadsheetID == "" {
		config.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadMailConfig loads IMAP configuration. GMAIL_ADDRESS and GMAIL_APP_PW
// remain honored as fallbacks for compatibility with the existing
// deployment's environment.
func LoadMailConfig() (*mail.Config, error) {
	config := mail.Config{
		Address:  viper.GetString("mail.address"),
		Username: viper.GetString("mail.username"),
		Password: viper.GetString("mail.password"),
		Folder:   viper.GetString("mail.folder"),
	}

	if config.Address == "" {
		config.Address = "imap.gmail.com:993"
	}
	if config.Username == "" {
		config.Username = os.Getenv("GMAIL_ADDRESS")
	}
	if config.Password == "" {
		config.Password = os.Getenv("GMAIL_APP_PW")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadEngineConfig loads run settings: destination tab, subject phrases,
// and the completed aggregation policy.
func LoadEngineConfig() (engine.Config, error) {
	config := engine.Config{
		TabName:          viper.GetString("sheet.tab"),
		UpcomingSubject:  viper.GetString("subjects.upcoming"),
		CompletedSubject: viper.GetString("subjects.completed"),
	}

	if config.TabName == "" {
		return engine.Config{}, fmt.Errorf("sheet.tab is required")
	}
	if config.UpcomingSubject == "" {
		config.UpcomingSubject = DefaultUpcomingSubject
	}
	if config.CompletedSubject == "" {
		config.CompletedSubject = DefaultCompletedSubject
	}

	policyName := viper.GetString("completed.policy")
	if policyName == "" {
		policyName = string(model.PolicyLastNonBlank)
	}
	policy, err := model.ParseCompletedPolicy(policyName)
	if err != nil {
		return engine.Config{}, err
	}
	config.Policy = policy

	return config, nil
}

// LoadLayout loads the destination column layout. Absent configuration
// yields the production five-unit layout; a configured layout.units list
// replaces it wholesale.
func LoadLayout() (model.SheetLayout, error) {
	layout := model.DefaultLayout()

	if viper.IsSet("layout") {
		var configured model.SheetLayout
		if err := viper.UnmarshalKey("layout", &configured); err != nil {
			return model.SheetLayout{}, fmt.Errorf("invalid layout configuration: %w", err)
		}
		if configured.DateCol != 0 {
			layout.DateCol = configured.DateCol
		}
		if configured.CompletedCol != 0 {
			layout.CompletedCol = configured.CompletedCol
		}
		if configured.ScheduledCol != 0 {
			layout.ScheduledCol = configured.ScheduledCol
		}
		if len(configured.Units) > 0 {
			layout.Units = configured.Units
			for i := range layout.Units {
				layout.Units[i].Name = strings.TrimSpace(strings.ToLower(layout.Units[i].Name))
			}
		}
	}

	if err := layout.Validate(); err != nil {
		return model.SheetLayout{}, err
	}
	return layout, nil
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
