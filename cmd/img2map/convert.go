package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"path/filepath"

	"github.com/eak1mov/go-img2map/scenario"
	"github.com/eak1mov/go-img2map/tiledb"
	"github.com/eak1mov/go-img2map/tilemap"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type convertCmd struct {
	imageFlags

	outputFormat string
	outputPath   string
	templatePath string
	scenariosDir string
}

func (c *convertCmd) Name() string     { return "convert" }
func (c *convertCmd) Synopsis() string { return "convert an image into a tiled scenario" }
func (c *convertCmd) Usage() string {
	return "img2map convert [-o <path> -of <format> -template <path> -scenarios <dir>] [image flags] <image>\n"
}
func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	c.imageFlags.SetFlags(f)
	f.StringVar(&c.outputPath, "o", "", "Output path (default: <scenarios>/<image name>/control.lua)")
	f.StringVar(&c.outputFormat, "of", "", "Output format (scenario, lua, sqlite)")
	f.StringVar(&c.templatePath, "template", filepath.Join("template", "simple-tile.lua"), "Scenario template script")
	f.StringVar(&c.scenariosDir, "scenarios", "", "Scenarios directory (default: $"+scenario.EnvScenariosDir+" or $APPDATA/Factorio/scenarios)")
}

func (c *convertCmd) writeScenario(imagePath string, width, height int, m *tilemap.Map) error {
	dir := c.scenariosDir
	if dir == "" {
		var err error
		if dir, err = scenario.DefaultDir(); err != nil {
			return err
		}
	}

	writer, err := scenario.NewWriter(scenario.Pattern(dir), c.templatePath, scenario.WithLogger(slog.Default()))
	if err != nil {
		return err
	}

	filePath, err := writer.Write(scenario.Name(imagePath), width, height, m)
	if err != nil {
		return err
	}
	log.Println("Written:", filePath)
	return nil
}

func (c *convertCmd) writeLua(width, height int, m *tilemap.Map) error {
	// The pattern is unused when writing to an explicit path.
	writer, err := scenario.NewWriter(scenario.Pattern("."), c.templatePath, scenario.WithLogger(slog.Default()))
	if err != nil {
		return err
	}
	if err := writer.WriteFile(c.outputPath, width, height, m); err != nil {
		return err
	}
	log.Println("Written:", c.outputPath)
	return nil
}

func (c *convertCmd) writeSqlite(imagePath string, width, height int, m *tilemap.Map) error {
	writer, err := tiledb.NewWriter(
		c.outputPath,
		width,
		height,
		tiledb.WithMetadata(map[string]string{
			"source":    filepath.Base(imagePath),
			"threshold": fmt.Sprint(c.threshold),
		}),
		tiledb.WithLogger(slog.Default()),
	)
	if err != nil {
		return err
	}
	defer writer.Close()

	bar := progressbar.NewOptions(m.Len(), progressbar.OptionSetDescription("Writing tiles"), progressbar.OptionShowCount())
	err = m.VisitTiles(func(p tilemap.Point, kind tilemap.Kind) error {
		err := writer.WriteTile(p, kind)
		bar.Add(1)
		return err
	})
	bar.Finish()
	fmt.Println()

	if err != nil {
		return err
	}
	if err := writer.Finalize(); err != nil {
		return err
	}
	log.Println("Written:", c.outputPath)
	return nil
}

func (c *convertCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		log.Print(c.Usage())
		return subcommands.ExitUsageError
	}
	imagePath := f.Arg(0)

	if err := c.validate(); err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}

	format := deduceFormat(c.outputFormat, c.outputPath)
	switch format {
	case formatScenario:
	case formatLua, formatSqlite:
		if c.outputPath == "" {
			log.Printf("output path is required for format %q", format)
			return subcommands.ExitUsageError
		}
	default:
		log.Printf("invalid output format: %q", c.outputFormat)
		return subcommands.ExitUsageError
	}

	img, err := c.prepare(ctx, imagePath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if c.preview {
		if err := c.savePreview(img, imagePath); err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	log.Println("Converting tiles...")
	m, err := tilemap.FromImage(img, c.threshold)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	size := img.Bounds().Size()
	switch format {
	case formatScenario:
		err = c.writeScenario(imagePath, size.X, size.Y, m)
	case formatLua:
		err = c.writeLua(size.X, size.Y, m)
	case formatSqlite:
		err = c.writeSqlite(imagePath, size.X, size.Y, m)
	}

	if errors.Is(err, scenario.ErrTemplate) {
		log.Println("Template failed to copy:", err)
		return subcommands.ExitFailure
	}
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	log.Println("Complete")
	return subcommands.ExitSuccess
}
