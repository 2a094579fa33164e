// Package config loads pslint configuration from local and global YAML files
// with precedence rules. It is internal; CLI code maps flags and files into
// invocation parameters.
package config
