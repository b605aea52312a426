// Package config handles loading of bdfrg application settings.
//
// Configuration is read from ~/.config/bdfrg/config.toml with environment
// variable overrides.
//
// # Configuration Sources (highest priority first)
//
//   - BDFRG_METADATA_DIR, BDFRG_PROFILE_DIR, BDFRG_LOG_LEVEL,
//     BDFRG_COMMAND_PREFIX env vars
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - metadata_dir: extra field documents layered over the bundled ones
//   - profile_dir: where named profiles are stored (default ~/.config/bdfrg/profiles)
//   - log_level: debug, info, warn or error (default "warn")
//   - command_prefix: downloader invocation shown before the arguments
//   - wrap_width: tooltip wrap width for "bdfrg fields" (default 60)
//
// Directory paths must be absolute or start with ~.
package config
