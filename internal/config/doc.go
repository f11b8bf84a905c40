// Package config loads and validates snowkit configuration.
//
// Configuration comes from two layers:
//   - a TOML file (./snowkit.toml, falling back to
//     ~/.config/snowkit/config.toml)
//   - SNOWFLAKE_* environment variables, which override the file
//
// The environment layer matches the variables Snowpark Container Services
// injects into running containers (SNOWFLAKE_ACCOUNT, SNOWFLAKE_HOST, ...),
// so the same binary configures itself correctly inside and outside SPCS.
package config
