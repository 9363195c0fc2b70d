// Package config loads, normalizes, and validates avsync configuration.
//
// Configuration is read from a TOML file (default ~/.config/avsync/config.toml,
// or ./avsync.toml as a project-local fallback). A missing file yields the
// repository defaults; a present file is merged over them. All tunables that
// affect alignment behavior (sample rate, confidence threshold, epsilon) live
// here so concurrent invocations with different settings never share state.
package config
