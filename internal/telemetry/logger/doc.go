// Package logger provides structured logging for rustbucket.
//
// It wraps log/slog to provide JSON or text structured logging with a
// dynamically adjustable level and automatic redaction of credentials, so
// an AUTH password can never leak into the log stream.
package logger
