// Package config builds a Logger from a declarative description.
//
// A Config starts from Default, is overlaid by a JSON or YAML file with
// Load and by LOG_* environment variables with FromEnv, and is turned into
// a Logger with Build. Unparseable environment values are ignored so a
// typo never stops a program from starting.
package config
