// Package config provides configuration loading, merging, and validation
// for the eagle-pass server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Built-in defaults fill the remaining gaps. The entry point is
// [GetStructuredConfig].
package config
