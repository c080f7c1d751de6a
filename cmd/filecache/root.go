// Package main provides the filecache CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/leonardcser/filecache/internal/cache"
	"github.com/leonardcser/filecache/internal/config"
	"github.com/leonardcser/filecache/internal/logger"
)

// errFailed marks a storage operation that reported false.
var errFailed = errors.New("operation failed")

type rootFlags struct {
	config  string
	dir     string
	backend string
}

// app carries the state shared by every subcommand.
type app struct {
	flags rootFlags
	out   io.Writer
	cache cache.Cache
	close func() error
}

// run executes the CLI with args and releases the store afterwards.
func run(args []string, out io.Writer) error {
	a := &app{out: out}
	rootCmd := a.rootCmd()
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if a.close != nil {
		if cerr := a.close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "filecache",
		Short: "File-backed key-value cache",
		Long: `filecache stores one file per key in a cache directory.

Keys are 1-64 characters from A-Z a-z 0-9 _ and . ; entries may carry a TTL
that is enforced when they are next read.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
	}
	rootCmd.SetOut(a.out)

	rootCmd.PersistentFlags().StringVarP(&a.flags.config, "config", "c", "", "Path to configuration file (default $FILECACHE_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&a.flags.dir, "dir", "d", "", "Cache directory, overrides the config file")
	rootCmd.PersistentFlags().StringVarP(&a.flags.backend, "backend", "b", "", "Store backend: file or bolt")

	rootCmd.AddCommand(
		a.getCmd(),
		a.setCmd(),
		a.deleteCmd(),
		a.hasCmd(),
		a.clearCmd(),
		a.getManyCmd(),
		a.setManyCmd(),
		a.deleteManyCmd(),
	)
	return rootCmd
}

func (a *app) open() error {
	var (
		cfg *config.Config
		err error
	)
	if a.flags.config != "" {
		cfg, err = config.Load(a.flags.config)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}
	if a.flags.backend != "" {
		cfg.Backend = a.flags.backend
	}
	if a.flags.dir != "" {
		cfg.Dir = a.flags.dir
	}
	if cfg.Log != "" {
		if err := logger.Init(cfg.Log); err != nil {
			return err
		}
	}
	logger.Debugf("filecache: backend=%s dir=%s bolt_path=%s", cfg.Backend, cfg.Dir, cfg.BoltPath)

	c, closeFn, err := config.OpenCache(cfg)
	if err != nil {
		return err
	}
	a.cache = c
	a.close = closeFn
	return nil
}

// parseTTL accepts "" (no expiry), whole seconds ("90") or a Go duration ("1h30m").
func parseTTL(s string) (any, error) {
	if s == "" {
		return nil, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return nil, fmt.Errorf("invalid ttl %q: want seconds or a duration like 30s", s)
	}
	return d, nil
}

func (a *app) report(ok bool) error {
	fmt.Fprintln(a.out, ok)
	if !ok {
		return errFailed
	}
	return nil
}
