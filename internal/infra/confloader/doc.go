// Package confloader provides configuration loading mechanism.
//
// This package implements a flexible configuration loader that supports
// multiple sources and formats using koanf as the underlying library.
//
// Features:
//
//   - Multiple Sources: Files, environment variables, maps
//   - Format: YAML files
//   - Watch Support: Automatic reload on config file changes
//   - Type Safety: Unmarshaling into typed structs
//   - Defaults: Keys missing from every source keep the target's values
//
// Priority used by Loader.Load (highest to lowest):
//
//  1. Environment variables
//  2. Configuration file
//  3. Default values
//
package confloader
