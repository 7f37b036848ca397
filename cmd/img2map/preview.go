package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/subcommands"
)

type previewCmd struct {
	imageFlags
}

func (c *previewCmd) Name() string     { return "preview" }
func (c *previewCmd) Synopsis() string { return "save a black and white preview of the converted image" }
func (c *previewCmd) Usage() string {
	return "img2map preview [-preview_dir <dir>] [image flags] <image>\n"
}

func (c *previewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		log.Print(c.Usage())
		return subcommands.ExitUsageError
	}
	imagePath := f.Arg(0)

	if err := c.validate(); err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}

	img, err := c.prepare(ctx, imagePath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if err := c.savePreview(img, imagePath); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
