package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func (a *app) getCmd() *cobra.Command {
	var def string
	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value stored under KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.cache.Get(args[0], def)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, v)
			return nil
		},
	}
	cmd.Flags().StringVar(&def, "default", "", "Value printed on a miss")
	return cmd
}

func (a *app) setCmd() *cobra.Command {
	var ttl string
	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store VALUE under KEY",
		Long: `Store VALUE under KEY, replacing any existing entry.

A --ttl of zero or less removes KEY instead of writing it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTTL(ttl)
			if err != nil {
				return err
			}
			ok, err := a.cache.Set(args[0], args[1], t)
			if err != nil {
				return err
			}
			return a.report(ok)
		},
	}
	cmd.Flags().StringVar(&ttl, "ttl", "", "Time to live: seconds or a duration such as 10m")
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete KEY",
		Short: "Remove KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.cache.Delete(args[0])
			if err != nil {
				return err
			}
			return a.report(ok)
		},
	}
}

func (a *app) hasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "has KEY",
		Short: "Report whether an entry exists for KEY (expiry is not checked)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.cache.Has(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, ok)
			return nil
		},
	}
}

func (a *app) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.report(a.cache.Clear())
		},
	}
}

func (a *app) getManyCmd() *cobra.Command {
	var def string
	cmd := &cobra.Command{
		Use:   "get-many KEY...",
		Short: "Print key=value for each KEY in order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			got, err := a.cache.GetMultiple(args, def)
			if err != nil {
				return err
			}
			for pair := got.Oldest(); pair != nil; pair = pair.Next() {
				fmt.Fprintf(a.out, "%s=%v\n", pair.Key, pair.Value)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&def, "default", "", "Value printed on a miss")
	return cmd
}

func (a *app) setManyCmd() *cobra.Command {
	var ttl string
	cmd := &cobra.Command{
		Use:   "set-many KEY=VALUE...",
		Short: "Store several entries, stopping at the first failure",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTTL(ttl)
			if err != nil {
				return err
			}
			values := orderedmap.New[string, any]()
			for _, arg := range args {
				k, v, found := strings.Cut(arg, "=")
				if !found {
					return fmt.Errorf("argument %q is not KEY=VALUE", arg)
				}
				values.Set(k, v)
			}
			ok, err := a.cache.SetMultiple(values, t)
			if err != nil {
				return err
			}
			return a.report(ok)
		},
	}
	cmd.Flags().StringVar(&ttl, "ttl", "", "Time to live: seconds or a duration such as 10m")
	return cmd
}

func (a *app) deleteManyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-many KEY...",
		Short: "Remove several keys, stopping at the first failure",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.cache.DeleteMultiple(args)
			if err != nil {
				return err
			}
			return a.report(ok)
		},
	}
}
