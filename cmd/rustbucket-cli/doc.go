// Package main provides the entry point for rustbucket-cli.
//
// The CLI is a minimal RESP client for ad-hoc access to a rustbucket
// server:
//
//	rustbucket-cli [flags] COMMAND [arg ...]
//	rustbucket-cli -s 127.0.0.1:6379 set greeting hello
//	rustbucket-cli get greeting
//
// With no command it enters an interactive prompt, reading one command
// per line until EOF or "quit".
package main
