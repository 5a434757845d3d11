// Package config provides configuration loading, merging, and validation
// facilities for the cryptpix server and client.
//
// Configuration is assembled from multiple sources. Each source only fills
// the fields the previous ones left empty:
//  1. Environment variables
//  2. Command-line flags (server only)
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the CLI client.
package config
