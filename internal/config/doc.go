// Package config loads and validates the project configuration from
// viper, merging the config file, environment and flag overrides into one
// struct the rest of the application consumes.
package config
