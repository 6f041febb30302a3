// Package confloader provides the configuration loading mechanism.
//
// It uses koanf to merge configuration from multiple sources with
// priority: environment > file > defaults. A companion fsnotify-based
// Watcher supports hot reload of settings that are safe to change at
// runtime, such as the log level.
package confloader
