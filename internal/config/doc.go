// Package config loads, merges and validates configuration for the AirGuard
// console and the development API.
//
// Sources are applied in the following order, later sources overriding
// earlier non-zero fields:
//  1. built-in defaults
//  2. a .env file (path from DOTENV, default ".env"; skipped when missing)
//  3. environment variables
//  4. command-line flags
//  5. JSON config file (path from CONFIG or -c)
//
// [GetClientConfig] and [GetServerConfig] return validated views tailored to
// each binary.
package config
