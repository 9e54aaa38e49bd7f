package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

// runCmd executes a script of session commands and stops at the first error.
type runCmd struct {
	*root
	fs *flag.FlagSet

	width  int
	height int
	output string
	script string
}

func (c *runCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseRunCmd(args []string, r *root) (*runCmd, error) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	c := &runCmd{root: r.subcommand("run"), fs: fs}
	fs.Usage = usageFunc(c)
	fs.IntVar(&c.width, "width", defaultSize(r.config.CanvasWidth, 800), "canvas width in pixels")
	fs.IntVar(&c.height, "height", defaultSize(r.config.CanvasHeight, 600), "canvas height in pixels")
	fs.StringVar(&c.output, "o", "", "write the canvas to this PNG file when the script ends")
	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{of: c}
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: c}
	}
	c.script = fs.Arg(0)
	return c, nil
}

func (c *runCmd) Run() error {
	var in io.Reader = c.stdin
	if c.script != "-" {
		f, err := os.Open(c.script)
		if err != nil {
			return err
		}
		defer closeWithLog(c.script, f)
		in = f
	}

	s := newCmdSession(c.root, c.stdout, c.width, c.height)
	scanner := bufio.NewScanner(in)
	for n := 1; scanner.Scan(); n++ {
		done, err := s.executeLine(scanner.Text())
		if err != nil {
			return fmt.Errorf("%s:%d: %w", c.script, n, err)
		}
		if done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if c.output == "" {
		return nil
	}
	s.ed.Selection().CommitOrCancel(false)
	if err := s.export(c.output); err != nil {
		return fmt.Errorf("write %s: %w", c.output, err)
	}
	return nil
}

func closeWithLog(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Printf("%s: close: %v", name, err)
	}
}
