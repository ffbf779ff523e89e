// Package config loads runtime configuration for the vingd CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. VINGD_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the connect timeout, so it can be
// either a string like "5s" or integer nanoseconds:
//
//	{
//	  "environment": "sandbox",
//	  "backend_url": "https://api.vingd.com/sandbox/broker/v1",
//	  "frontend_url": "http://www.sandbox.vingd.com",
//	  "username": "test@vingd.com",
//	  "connect_timeout": "5s",
//	  "max_redirects": 5,
//	  "insecure_skip_verify": false,
//	  "log_level": "debug",
//	  "log_backend": "logrus"
//	}
package config
