// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/folio"
	"github.com/poiesic/folio/core"
)

func main() {
	dbFlag := &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}

	app := &cli.App{
		Name:  "folio",
		Usage: "Indexed library catalog with prefix search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Add a material to the catalog",
				Action: addCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.StringFlag{
						Name:  "id",
						Usage: "Material id (derived from title and creator if omitted)",
					},
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Material title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "creator",
						Usage: "Author, artist, or publisher",
					},
					&cli.Float64Flag{
						Name:  "price",
						Usage: "Price",
					},
					&cli.IntFlag{
						Name:  "year",
						Usage: "Publication year",
					},
					&cli.StringFlag{
						Name:  "type",
						Usage: "Material type (book, ebook, audio, video, magazine)",
						Value: "book",
					},
					&cli.IntFlag{
						Name:  "duration",
						Usage: "Playback duration in seconds (audio/video)",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Media format, e.g. mp3 or mkv (audio/video)",
					},
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove a material by id",
				ArgsUsage: "<id>",
				Action:    removeCommand,
				Flags:     []cli.Flag{dbFlag},
			},
			{
				Name:      "get",
				Usage:     "Show a material by id",
				ArgsUsage: "<id>",
				Action:    getCommand,
				Flags:     []cli.Flag{dbFlag},
			},
			{
				Name:      "search",
				Usage:     "Search materials by title prefix",
				ArgsUsage: "<prefix>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.BoolFlag{
						Name:  "creator",
						Usage: "Match the creator field instead of title prefixes",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results (0 means unlimited)",
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List all materials ordered by title",
				Action: listCommand,
				Flags:  []cli.Flag{dbFlag},
			},
			{
				Name:   "stats",
				Usage:  "Show catalog size, per-type counts, and cache statistics",
				Action: statsCommand,
				Flags:  []cli.Flag{dbFlag},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openLibrary(c *cli.Context) (*folio.Library, error) {
	lib, err := folio.NewLibrary(c.String("db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	return lib, nil
}

func addCommand(c *cli.Context) error {
	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	materialType, err := core.ParseMaterialType(c.String("type"))
	if err != nil {
		return err
	}

	material := &core.Material{
		Id:      c.String("id"),
		Title:   c.String("title"),
		Creator: c.String("creator"),
		Price:   c.Float64("price"),
		Year:    c.Int("year"),
		Type:    materialType,
	}
	if material.Id == "" {
		material.Id = core.IDFromContent(material.Title + "|" + material.Creator)
	}
	if c.Int("duration") > 0 || c.String("format") != "" {
		material.Media = &core.MediaFields{
			DurationSec: c.Int("duration"),
			Format:      c.String("format"),
		}
	}

	added, err := lib.Add(context.Background(), material)
	if err != nil {
		return err
	}
	if !added {
		return fmt.Errorf("material %s already exists", material.Id)
	}

	fmt.Printf("added %s\n", material.Id)
	return nil
}

func removeCommand(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("material id is required")
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	removed, err := lib.Remove(context.Background(), id)
	if err != nil {
		return err
	}
	if removed == nil {
		return fmt.Errorf("material %s not found", id)
	}

	fmt.Printf("removed %s (%s)\n", removed.Id, removed.Title)
	return nil
}

func getCommand(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("material id is required")
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	material, err := lib.FindByID(id)
	if err != nil {
		return err
	}
	if material == nil {
		return fmt.Errorf("material %s not found", id)
	}

	printMaterials(material)
	return nil
}

func searchCommand(c *cli.Context) error {
	query := c.Args().First()
	if query == "" {
		return fmt.Errorf("search term is required")
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	var results []*core.Material
	switch {
	case c.Bool("creator"):
		results, err = lib.SearchByCreator(query)
	case c.Int("limit") > 0:
		results, err = lib.SearchByTitleWithLimit(query, c.Int("limit"))
	default:
		results, err = lib.SearchByTitle(query)
	}
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("no matches")
		return nil
	}
	printMaterials(results...)
	return nil
}

func listCommand(c *cli.Context) error {
	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	materials, err := lib.List()
	if err != nil {
		return err
	}
	printMaterials(materials...)
	return nil
}

func statsCommand(c *cli.Context) error {
	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	stats, err := lib.Stats(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("materials: %d\n", stats.Size)
	for materialType, count := range stats.ByType {
		fmt.Printf("  %s: %d\n", materialType, count)
	}
	fmt.Printf("cache: %d/%d entries, %d hits, %d misses (%.1f%% hit ratio)\n",
		stats.Cache.Size, stats.Cache.Capacity,
		stats.Cache.Hits, stats.Cache.Misses,
		stats.Cache.HitRatio()*100)
	return nil
}

func printMaterials(materials ...*core.Material) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tTITLE\tCREATOR\tYEAR\tPRICE")
	for _, m := range materials {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.2f\n",
			m.Id, m.Type, m.Title, m.Creator, m.Year, m.Price)
	}
	w.Flush()
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
