package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/vingd/internal/flagx"
	"github.com/dmitrijs2005/vingd/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key from a zero value.
type JsonConfig struct {
	Environment        string          `json:"environment"`
	BackendURL         string          `json:"backend_url"`
	FrontendURL        string          `json:"frontend_url"`
	Username           string          `json:"username"`
	Password           string          `json:"password"`
	ConnectTimeout     *timex.Duration `json:"connect_timeout"`
	MaxRedirects       *int            `json:"max_redirects"`
	InsecureSkipVerify *bool           `json:"insecure_skip_verify"`
	LogLevel           string          `json:"log_level"`
	LogBackend         string          `json:"log_backend"`
}

// parseJson overlays cfg with the JSON file named by -c or -config. Keys
// missing from the file leave cfg untouched. It panics on read or unmarshal
// errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.Environment, jc.Environment)
	setString(&cfg.BackendURL, jc.BackendURL)
	setString(&cfg.FrontendURL, jc.FrontendURL)
	setString(&cfg.Username, jc.Username)
	setString(&cfg.Password, jc.Password)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogBackend, jc.LogBackend)

	if jc.ConnectTimeout != nil {
		cfg.ConnectTimeout = jc.ConnectTimeout.Duration
	}
	if jc.MaxRedirects != nil {
		cfg.MaxRedirects = *jc.MaxRedirects
	}
	if jc.InsecureSkipVerify != nil {
		cfg.InsecureSkipVerify = *jc.InsecureSkipVerify
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
