// Package config defines the application configuration structures and
// handles loading configuration values from environment variables and
// optional config files. Environment variables take precedence.
package config
