package main

import (
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/example/clippaint/internal/capture"
)

var listMonitors = capture.ListMonitors

// monitorsCmd lists the selectors accepted by -monitor and the capture
// command.
type monitorsCmd struct {
	*root
	fs *flag.FlagSet
}

func (c *monitorsCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseMonitorsCmd(args []string, r *root) (*monitorsCmd, error) {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	c := &monitorsCmd{root: r.subcommand("monitors"), fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{of: c}
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *monitorsCmd) Run() error {
	monitors, err := listMonitors()
	if err != nil {
		return err
	}
	if len(monitors) == 0 {
		fmt.Fprintln(c.stdout, "no monitors available")
		return nil
	}
	tw := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tNAME\tGEOMETRY\tPRIMARY")
	for _, m := range monitors {
		primary := ""
		if m.Primary {
			primary = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%dx%d+%d+%d\t%s\n", m.Index, m.Name, m.Rect.Dx(), m.Rect.Dy(), m.Rect.Min.X, m.Rect.Min.Y, primary)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "selectors: <index>, #<index>, primary, or part of the name")
	return nil
}
