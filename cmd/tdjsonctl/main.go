//go:build !ios && !android && (amd64 || arm64)

// Command tdjsonctl inspects and exercises a tdjson installation.
//
// Usage:
//
//	tdjsonctl [--library PATH] [--verbose] <command>
//
// Commands:
//
//	paths     list the locations searched for the library
//	probe     try every location and report which ones load
//	info      load the library and print its binding state as JSON
//	execute   run a synchronous request and print the result
//	ping      create a client, send a request and print what comes back
//	bench     create and destroy many clients concurrently
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/obinnaokechukwu/tdjson"
	"github.com/obinnaokechukwu/tdjson/internal/bindings"
	"github.com/obinnaokechukwu/tdjson/internal/platform"
)

func main() {
	app := &cli.App{
		Name:  "tdjsonctl",
		Usage: "inspect and exercise the TDLib JSON client library",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "library",
				Aliases: []string{"l"},
				Usage:   "path to the tdjson shared library",
				EnvVars: []string{tdjson.EnvLibraryPath},
			},
			&cli.BoolFlag{
				Name:  "no-system-paths",
				Usage: "do not search the built-in install locations",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log binding and client lifecycle events",
			},
		},
		Before: func(c *cli.Context) error {
			log, err := newLogger(c.Bool("verbose"))
			if err != nil {
				return err
			}
			tdjson.SetLogger(log)
			return nil
		},
		Commands: []*cli.Command{
			pathsCommand(),
			probeCommand(),
			infoCommand(),
			executeCommand(),
			pingCommand(),
			benchCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func configFrom(c *cli.Context) tdjson.Config {
	cfg := tdjson.DefaultConfig()
	cfg.LibraryPath = c.String("library")
	cfg.NoSystemPaths = c.Bool("no-system-paths")
	return cfg
}

func bridgeFrom(c *cli.Context, opts ...tdjson.Option) *tdjson.Bridge {
	return tdjson.New(append([]tdjson.Option{tdjson.WithConfig(configFrom(c))}, opts...)...)
}

func pathsCommand() *cli.Command {
	return &cli.Command{
		Name:  "paths",
		Usage: "list the locations searched for the library, in order",
		Action: func(c *cli.Context) error {
			for i, p := range tdjson.CandidatePaths(configFrom(c)) {
				fmt.Printf("%2d. %s\n", i+1, p)
			}
			return nil
		},
	}
}

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:  "probe",
		Usage: "try to load every candidate location",
		Action: func(c *cli.Context) error {
			found := false
			for _, p := range tdjson.CandidatePaths(configFrom(c)) {
				if err := bindings.Probe(platform.Native, p); err != nil {
					fmt.Printf("  FAIL  %s\n        %v\n", p, err)
					continue
				}
				fmt.Printf("  OK    %s\n", p)
				found = true
			}
			if !found {
				return cli.Exit("no loadable tdjson library found", 1)
			}
			return nil
		},
	}
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "load the library and print its binding state",
		Action: func(c *cli.Context) error {
			b := bridgeFrom(c)
			if err := b.Load(); err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(b.LibraryInfo())
		},
	}
}

func executeCommand() *cli.Command {
	return &cli.Command{
		Name:      "execute",
		Usage:     "run a synchronous request",
		ArgsUsage: "<request-json>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("execute takes exactly one request", 2)
			}
			b := bridgeFrom(c)
			if err := b.Load(); err != nil {
				return err
			}
			resp, ok, err := b.Execute(c.Args().First())
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("null")
				return nil
			}
			fmt.Println(resp)
			return nil
		},
	}
}

func pingCommand() *cli.Command {
	return &cli.Command{
		Name:  "ping",
		Usage: "create a client, send a request and print the responses",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "request",
				Value: `{"@type":"getOption","name":"version"}`,
				Usage: "request to send",
			},
			&cli.Float64Flag{
				Name:  "timeout",
				Value: 5,
				Usage: "seconds to wait for each response",
			},
			&cli.IntFlag{
				Name:  "count",
				Value: 3,
				Usage: "responses to wait for",
			},
		},
		Action: func(c *cli.Context) error {
			b := bridgeFrom(c)
			defer b.Close()

			id, err := b.CreateClientAsync(nil).Wait(c.Context)
			if err != nil {
				return err
			}
			fmt.Printf("client %s\n", id)

			if err := b.Send(id, c.String("request")); err != nil {
				return err
			}
			for i := 0; i < c.Int("count"); i++ {
				resp, ok, err := b.Receive(id, c.Float64("timeout"))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("(timeout)")
					continue
				}
				fmt.Println(resp)
			}
			return nil
		},
	}
}

func benchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "create and destroy clients concurrently",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "n",
				Value:   32,
				Usage:   "clients to create",
				Aliases: []string{"count"},
			},
			&cli.IntFlag{
				Name:  "workers",
				Value: 4,
				Usage: "concurrent creations",
			},
		},
		Action: func(c *cli.Context) error {
			n := c.Int("n")
			if n < 1 {
				return cli.Exit("n must be positive", 2)
			}
			b := bridgeFrom(c, tdjson.WithWorkers(c.Int("workers")))

			start := time.Now()
			ids, err := createAll(c.Context, b, n)
			created := time.Since(start)
			if err != nil {
				return multierr.Append(err, b.Close())
			}

			start = time.Now()
			if err := b.Close(); err != nil {
				return err
			}
			destroyed := time.Since(start)

			fmt.Printf("created   %d clients in %v (%v/client)\n", len(ids), created, created/time.Duration(len(ids)))
			fmt.Printf("destroyed %d clients in %v\n", len(ids), destroyed)
			return nil
		},
	}
}

func createAll(ctx context.Context, b *tdjson.Bridge, n int) ([]string, error) {
	ids := make([]string, n)
	g, ctx := errgroup.WithContext(ctx)
	for i := range ids {
		i := i
		g.Go(func() error {
			id, err := b.CreateClient(ctx)
			if err != nil {
				return err
			}
			ids[i] = id
			return nil
		})
	}
	return ids, g.Wait()
}
