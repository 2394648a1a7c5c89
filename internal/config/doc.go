// Package config loads the exporter configuration.
//
// Settings are layered: built-in defaults, then an optional YAML file
// (-config flag), then environment variables, which always win so the
// exporter can run fully env-configured in a container with no file at all.
//
// Environment variables: TECHNITIUM_BASE_URL, TECHNITIUM_TOKEN (required),
// TECHNITIUM_NODE, TECHNITIUM_STATS_RANGE, TECHNITIUM_TOP_LIMIT,
// EXPORTER_PORT, TECHNITIUM_VERIFY_SSL, SERVER_LABEL. The token is never
// read from the config file.
//
// Watch(ctx, path, onChange) uses fsnotify to detect file changes and calls
// onChange with the newly parsed Config. It handles the rename→create pattern
// used by atomic-save editors by re-adding the watch after the event.
package config
