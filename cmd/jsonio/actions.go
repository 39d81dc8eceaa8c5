package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/reoring/jsonio"
	"github.com/reoring/jsonio/backend/bundled"
	"github.com/reoring/jsonio/codec"
	"github.com/reoring/jsonio/schema"
)

func baseConfig(c *cli.Context) (jsonio.ReaderConfig, error) {
	if p := c.String("config"); p != "" {
		return jsonio.LoadConfig(p)
	}
	return jsonio.DefaultConfig(), nil
}

func logger(c *cli.Context) jsonio.Logger {
	if c.Bool("verbose") {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return jsonio.DiscardLogger()
}

func sourceArg(c *cli.Context) (any, error) {
	if c.NArg() != 1 {
		return nil, fmt.Errorf("expected exactly one source argument, got %d", c.NArg())
	}
	arg := c.Args().First()
	if arg == "-" {
		return io.Reader(os.Stdin), nil
	}
	return arg, nil
}

func sourceFlagSet(c *cli.Context) jsonio.Flags {
	f := jsonio.None
	if c.Bool("json") {
		f |= jsonio.ForceIsJSON
	}
	if c.Bool("path") {
		f |= jsonio.ForceIsPath
	}
	if c.Bool("probe") {
		f |= jsonio.FSProbe
	}
	return f
}

func readAction(c *cli.Context) error {
	src, err := sourceArg(c)
	if err != nil {
		return err
	}
	cfg, err := baseConfig(c)
	if err != nil {
		return err
	}
	if name := c.String("backend"); name != "" {
		cfg.BackendName = name
	}
	if enc := c.String("encoding"); enc != "" {
		cfg.Encoding = enc
	}
	if c.IsSet("timeout") {
		cfg.NetworkTimeout = c.Duration("timeout")
	}
	if c.Bool("safe") {
		cfg.SafeMode = true
	}

	reg := jsonio.NewRegistry()
	opts := []jsonio.Option{
		jsonio.WithConfig(cfg),
		jsonio.WithFlags(sourceFlagSet(c)),
		jsonio.WithRegistry(reg),
		jsonio.WithLogger(logger(c)),
	}
	if c.Bool("install") {
		opts = append(opts, jsonio.WithFlags(jsonio.RuntimeInstall), jsonio.WithInstaller(bundled.NewInstaller(reg)))
	} else if err := bundled.RegisterAll(reg); err != nil {
		return err
	}
	r, err := jsonio.New(opts...)
	if err != nil {
		return err
	}

	codecOpts := codec.Options{DisallowDuplicateKeys: c.Bool("strict"), MaxDepth: c.Int("max-depth")}
	readOpts := []jsonio.ReadOption{jsonio.ReadCodecOptions(codecOpts)}
	if p := c.String("schema"); p != "" {
		s, err := schema.FromFile(p)
		if err != nil {
			return err
		}
		readOpts = append(readOpts, jsonio.ReadValidator(s.Validator()))
	}

	v, err := r.Read(c.Context, src, readOpts...)
	if err != nil {
		return err
	}
	var encOpts codec.Options
	if c.Bool("pretty") {
		encOpts.Indent = "  "
	}
	out, err := r.Encode(c.Context, v, encOpts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(out))
	return err
}

func classifyAction(c *cli.Context) error {
	src, err := sourceArg(c)
	if err != nil {
		return err
	}
	cfg, err := baseConfig(c)
	if err != nil {
		return err
	}
	cs, err := jsonio.Classify(src, cfg.ClassificationFlags()|sourceFlagSet(c))
	if err != nil {
		return err
	}
	if d := cs.Describe(); d != "" {
		_, err = fmt.Fprintf(c.App.Writer, "%s\t%s\n", cs.Kind, d)
	} else {
		_, err = fmt.Fprintln(c.App.Writer, cs.Kind)
	}
	return err
}

func backendsAction(c *cli.Context) error {
	reg := jsonio.NewRegistry()
	if err := bundled.RegisterAll(reg); err != nil {
		return err
	}
	w := c.App.Writer
	fmt.Fprintf(w, "%-12s %-10s %s\n", "NAME", "STATUS", "SIZE LIMIT")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	for _, id := range codec.IDs() {
		status := "ok"
		if _, err := reg.Load(id); err != nil {
			status = "missing"
			if id == codec.Custom {
				status = "user"
			}
		}
		fmt.Fprintf(w, "%-12s %-10s %dMB\n", id, status, id.SizeLimit()>>20)
	}
	return nil
}
