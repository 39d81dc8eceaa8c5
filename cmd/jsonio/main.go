package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "jsonio:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "jsonio",
		Usage: "read JSON from paths, URLs, stdin or literal text",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML reader config file"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log advisories to stderr"},
		},
		Commands: []*cli.Command{
			{
				Name:      "read",
				Usage:     "decode a source and print it",
				ArgsUsage: "<source|->",
				Flags: append(sourceFlags(),
					&cli.StringFlag{Name: "backend", Aliases: []string{"b"}, Usage: "backend name"},
					&cli.StringFlag{Name: "encoding", Usage: "encoding of byte sources"},
					&cli.DurationFlag{Name: "timeout", Usage: "network timeout"},
					&cli.BoolFlag{Name: "safe", Usage: "fail instead of falling back when the backend is unavailable"},
					&cli.BoolFlag{Name: "install", Usage: "register bundled backends on demand"},
					&cli.StringFlag{Name: "schema", Usage: "validate against this JSON Schema file"},
					&cli.BoolFlag{Name: "strict", Usage: "reject duplicate keys"},
					&cli.IntFlag{Name: "max-depth", Usage: "reject documents nested deeper than this"},
					&cli.BoolFlag{Name: "pretty", Aliases: []string{"p"}, Usage: "indent output"},
				),
				Action: readAction,
			},
			{
				Name:      "classify",
				Usage:     "show how a source would be classified",
				ArgsUsage: "<source>",
				Flags:     sourceFlags(),
				Action:    classifyAction,
			},
			{
				Name:   "backends",
				Usage:  "list backends and their availability",
				Action: backendsAction,
			},
		},
	}
}

func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "json", Usage: "treat the argument as JSON text"},
		&cli.BoolFlag{Name: "path", Usage: "treat the argument as a filesystem path"},
		&cli.BoolFlag{Name: "probe", Usage: "probe the filesystem to decide whether the argument is a path"},
	}
}
