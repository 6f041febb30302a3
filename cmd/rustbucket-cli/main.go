// Package main provides the entry point for rustbucket-cli.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/rahulkeshervani/rustbucket/internal/infra/buildinfo"
)

func main() {
	app := &cli.App{
		Name:      "rustbucket-cli",
		Usage:     "command-line client for rustbucket-server",
		Version:   buildinfo.String(),
		ArgsUsage: "[COMMAND [arg ...]]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "server address",
				EnvVars: []string{"RUSTBUCKET_SERVER"},
				Value:   "127.0.0.1:6379",
			},
			&cli.StringFlag{
				Name:    "auth",
				Aliases: []string{"a"},
				Usage:   "password sent via AUTH before the first command",
				EnvVars: []string{"RUSTBUCKET_AUTH"},
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	client, err := dial(c.String("server"), c.String("auth"))
	if err != nil {
		return err
	}
	defer client.Close()

	if c.Args().Present() {
		reply, err := client.Do(c.Args().Slice()...)
		if err != nil {
			return err
		}
		fmt.Println(renderReply(reply, 0))
		return nil
	}

	return repl(client)
}

// repl reads one command per line until EOF or quit.
func repl(client *Client) error {
	scanner := bufio.NewScanner(os.Stdin)
	prompt := client.Addr() + "> "

	fmt.Print(prompt)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 {
			if strings.EqualFold(fields[0], "quit") || strings.EqualFold(fields[0], "exit") {
				return nil
			}
			reply, err := client.Do(fields...)
			if err != nil {
				return err
			}
			fmt.Println(renderReply(reply, 0))
		}
		fmt.Print(prompt)
	}
	return scanner.Err()
}
