package config

import "os"

// Environment variables read by parseEnv.
const (
	EnvVarEnvironment = "VINGD_ENVIRONMENT"
	EnvVarBackendURL  = "VINGD_BACKEND_URL"
	EnvVarFrontendURL = "VINGD_FRONTEND_URL"
	EnvVarUsername    = "VINGD_USERNAME"
	EnvVarPassword    = "VINGD_PASSWORD"
)

// lookupEnv is a test seam for os.LookupEnv.
var lookupEnv = os.LookupEnv

// parseEnv overlays cfg with the VINGD_* variables that are set and
// non-empty. The password is only accepted from here or the JSON file.
func parseEnv(cfg *Config) {
	for name, dst := range map[string]*string{
		EnvVarEnvironment: &cfg.Environment,
		EnvVarBackendURL:  &cfg.BackendURL,
		EnvVarFrontendURL: &cfg.FrontendURL,
		EnvVarUsername:    &cfg.Username,
		EnvVarPassword:    &cfg.Password,
	} {
		if v, ok := lookupEnv(name); ok {
			setString(dst, v)
		}
	}
}
