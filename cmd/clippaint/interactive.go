package main

import (
	"bufio"
	"flag"
	"fmt"
	"strings"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// interactiveCmd reads editor commands from standard input.
type interactiveCmd struct {
	*root
	fs *flag.FlagSet

	execs  commandList
	width  int
	height int
	output string
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet { return i.fs }

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ContinueOnError)
	i := &interactiveCmd{root: r.subcommand("interactive"), fs: fs}
	fs.Usage = usageFunc(i)
	fs.Var(&i.execs, "e", "execute a command in immediate mode (may be specified multiple times)")
	fs.IntVar(&i.width, "width", defaultSize(r.config.CanvasWidth, 800), "canvas width in pixels")
	fs.IntVar(&i.height, "height", defaultSize(r.config.CanvasHeight, 600), "canvas height in pixels")
	fs.StringVar(&i.output, "o", "", "write the canvas to this PNG file on exit")
	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{of: i}
	}
	return i, nil
}

func defaultSize(configured, fallback int) int {
	if configured > 0 {
		return configured
	}
	return fallback
}

func (i *interactiveCmd) Run() error {
	s := newCmdSession(i.root, i.stdout, i.width, i.height)
	if len(i.execs) > 0 {
		for _, line := range i.execs {
			done, err := s.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return i.finish(s)
	}

	fmt.Fprintln(i.stdout, "Enter commands (type 'exit' to quit)")
	scanner := bufio.NewScanner(i.stdin)
	for {
		fmt.Fprint(i.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := s.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(i.stderr, err)
		}
		if done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return i.finish(s)
}

func (i *interactiveCmd) finish(s *cmdSession) error {
	if i.output == "" {
		return nil
	}
	s.ed.Selection().CommitOrCancel(false)
	if err := s.export(i.output); err != nil {
		return fmt.Errorf("write %s: %w", i.output, err)
	}
	return nil
}
