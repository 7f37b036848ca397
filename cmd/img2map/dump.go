package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/eak1mov/go-img2map/tiledb"
	"github.com/eak1mov/go-img2map/tilemap"
	"github.com/google/subcommands"
)

type dumpCmd struct {
	inputPath string
}

func (c *dumpCmd) Name() string     { return "dump" }
func (c *dumpCmd) Synopsis() string { return "print the Lua table of a tile database" }
func (c *dumpCmd) Usage() string {
	return "img2map dump -i <path>\n"
}
func (c *dumpCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input tile database path")
}

func (c *dumpCmd) dump(w io.Writer) error {
	if _, err := os.Stat(c.inputPath); err != nil {
		return err
	}

	reader, err := tiledb.NewReader(c.inputPath)
	if err != nil {
		return err
	}
	defer reader.Close()

	width, height, err := reader.ReadSize()
	if err != nil {
		return err
	}

	m, err := reader.ReadMap()
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "width = %d\nheight = %d\nimg_table = ", width, height); err != nil {
		return err
	}
	return tilemap.WriteLua(w, m)
}

func (c *dumpCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.inputPath == "" {
		log.Print(c.Usage())
		return subcommands.ExitUsageError
	}

	out := bufio.NewWriter(os.Stdout)
	if err := c.dump(out); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	if err := out.Flush(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
