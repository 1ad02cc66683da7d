package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/burugo/schemamgr"
)

// driverTyper is implemented by dialects that can be linked against more than
// one driver implementation.
type driverTyper interface {
	DriverType() string
}

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List the engines linked into this binary and their drivers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, b := range schemamgr.Backends() {
				d, err := schemamgr.LookupDialect(b)
				if err != nil {
					return err
				}
				driver := d.DriverName()
				if dt, ok := d.(driverTyper); ok {
					driver += " (" + dt.DriverType() + ")"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\n", b, driver)
			}
			return w.Flush()
		},
	}
}

// printBool writes "true" or "false"; existence is reported on stdout, not
// through the exit code.
func printBool(cmd *cobra.Command, ok bool) {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), ok)
}

func newHasTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "has-table TABLE",
		Short: "Report whether a table exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				ok, err := s.Manager.HasTable(ctx, args[0])
				if err != nil {
					return err
				}
				printBool(cmd, ok)
				return nil
			})
		},
	}
}

func newHasColumnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "has-column TABLE COLUMN",
		Short: "Report whether a table has a column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				ok, err := s.Manager.HasColumn(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				printBool(cmd, ok)
				return nil
			})
		},
	}
}

func newHasIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "has-index TABLE INDEX",
		Short: "Report whether a table has an index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				ok, err := s.Manager.HasIndex(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				printBool(cmd, ok)
				return nil
			})
		},
	}
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe TABLE",
		Short: "Show the columns and indexes of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				info, err := s.Manager.DescribeTable(ctx, args[0])
				if err != nil {
					return err
				}
				if info == nil {
					return fmt.Errorf("table %q does not exist", args[0])
				}
				return printTable(cmd, info)
			})
		},
	}
}

func printTable(cmd *cobra.Command, info *schemamgr.TableInfo) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Table: %s\n\n", info.Name)
	_, _ = fmt.Fprintln(w, "COLUMN\tTYPE\tNULL\tKEY\tDEFAULT")
	for _, c := range info.Columns {
		null := "NO"
		if c.IsNullable {
			null = "YES"
		}
		key := ""
		switch {
		case c.IsPrimary:
			key = "PRI"
		case c.IsUnique:
			key = "UNI"
		}
		def := ""
		if c.Default != nil {
			def = *c.Default
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Name, c.DataType, null, key, def)
	}
	if len(info.Indexes) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "INDEX\tCOLUMNS\tUNIQUE")
		for _, idx := range info.Indexes {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%t\n", idx.Name, strings.Join(idx.Columns, ", "), idx.Unique)
		}
	}
	return w.Flush()
}
