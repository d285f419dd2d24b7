// Package config loads and validates relayd configuration.
//
// Configuration comes from a YAML file with ${VAR} environment expansion.
// Every field has a default; an absent file yields a fully defaulted config.
package config
