package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/example/clippaint/internal/imagesrc"
)

// resizeCmd changes the canvas size of an image file without scaling it.
type resizeCmd struct {
	*root
	fs *flag.FlagSet

	width  int
	height int
	output string
	input  string
}

func (c *resizeCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseResizeCmd(args []string, r *root) (*resizeCmd, error) {
	fs := flag.NewFlagSet("resize", flag.ContinueOnError)
	c := &resizeCmd{root: r.subcommand("resize"), fs: fs}
	fs.Usage = usageFunc(c)
	fs.IntVar(&c.width, "width", -1, "new canvas width (default keeps the width)")
	fs.IntVar(&c.height, "height", -1, "new canvas height (default keeps the height)")
	fs.StringVar(&c.output, "o", "", "output file (default INPUT with a -resized suffix)")
	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{of: c}
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: c}
	}
	c.input = fs.Arg(0)
	if c.output == "" {
		c.output = strings.TrimSuffix(c.input, ".png") + "-resized.png"
	}
	return c, nil
}

func (c *resizeCmd) Run() error {
	p, err := imagesrc.FromFile(c.input)
	if err != nil {
		return err
	}
	img, err := imagesrc.Decode(p)
	if err != nil {
		return fmt.Errorf("read %s: %w", c.input, err)
	}
	size := img.Bounds().Size()
	s := newCmdSession(c.root, c.stdout, size.X, size.Y)
	s.ed.Surface().Load(img)

	w, h := size.X, size.Y
	if c.width >= 0 {
		w = c.width
	}
	if c.height >= 0 {
		h = c.height
	}
	s.ed.Canvas().SetSize(w, h)
	if err := s.export(c.output); err != nil {
		return fmt.Errorf("write %s: %w", c.output, err)
	}
	fmt.Fprintf(c.stderr, "saved %s (%s)\n", c.output, s.ed.Surface().Bounds().Size())
	return nil
}
