package main

import (
	"bufio"
	"context"
	"flag"
	"iter"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/poiesic/folio"
	"github.com/poiesic/folio/core"
)

// Each record is Title|Creator|Type|Price|Year, optionally followed by
// |DurationSec|Format for audio and video.
var records = []string{
	"The Go Programming Language|Alan Donovan|book|39.99|2015",
	"Learning Go|Jon Bodner|book|49.99|2021",
	"Go in Practice|Matt Butcher|book|44.99|2016",
	"Concurrency in Go|Katherine Cox-Buday|book|39.99|2017",
	"Go Web Programming|Sau Sheong Chang|ebook|31.99|2016",
	"Network Programming with Go|Adam Woodbeck|ebook|35.99|2021",
	"Distributed Services with Go|Travis Jeffery|book|26.49|2021",
	"Black Hat Go|Tom Steele|ebook|27.99|2020",
	"The Rust Programming Language|Steve Klabnik|book|39.95|2019",
	"Rust in Action|Tim McNamara|book|59.99|2021",
	"Programming Rust|Jim Blandy|ebook|55.99|2021",
	"Clean Code|Robert Martin|book|44.99|2008",
	"Clean Code Audiobook|Robert Martin|audio|24.95|2010|32400|mp3",
	"The Pragmatic Programmer|Andrew Hunt|book|49.95|2019",
	"The Pragmatic Programmer Audiobook|Andrew Hunt|audio|29.95|2020|35100|m4b",
	"Designing Data-Intensive Applications|Martin Kleppmann|book|59.99|2017",
	"Database Internals|Alex Petrov|book|55.99|2019",
	"Site Reliability Engineering|Betsy Beyer|ebook|0.00|2016",
	"The Phoenix Project|Gene Kim|book|26.99|2013",
	"The Phoenix Project Audiobook|Gene Kim|audio|21.95|2014|27000|mp3",
	"Structure and Interpretation of Computer Programs|Harold Abelson|book|54.99|1996",
	"SICP Lectures|Harold Abelson|video|0.00|1986|108000|mp4",
	"Introduction to Algorithms|Thomas Cormen|book|99.99|2022",
	"Algorithms Unlocked|Thomas Cormen|ebook|19.99|2013",
	"Communications of the ACM|ACM|magazine|12.00|2024",
	"IEEE Spectrum|IEEE|magazine|9.50|2024",
	"Linux Journal|Linux Journal Staff|magazine|6.00|2019",
	"The Mythical Man-Month|Fred Brooks|book|34.99|1995",
	"Code Complete|Steve McConnell|book|54.99|2004",
	"Refactoring|Martin Fowler|book|49.99|2018",
	"Refactoring Audiobook|Martin Fowler|audio|26.95|2019|43200|mp3",
	"Domain-Driven Design|Eric Evans|book|64.99|2003",
	"Release It!|Michael Nygard|ebook|25.99|2018",
	"Kubernetes Up and Running|Brendan Burns|book|49.99|2022",
	"Kubernetes Deep Dive|Brendan Burns|video|39.00|2023|21600|mkv",
	"Programming Pearls|Jon Bentley|book|39.99|1999",
	"The C Programming Language|Brian Kernighan|book|58.99|1988",
	"The Practice of Programming|Brian Kernighan|book|49.99|1999",
	"Unix and Linux System Administration Handbook|Evi Nemeth|book|69.99|2017",
	"Effective Java|Joshua Bloch|book|51.99|2018",
	"Java Basics|Kathy Sierra|book|39.99|2005",
	"Java Advanced|Kathy Sierra|book|44.99|2009",
	"Head First Design Patterns|Eric Freeman|ebook|41.99|2020",
	"Crafting Interpreters|Robert Nystrom|book|39.99|2021",
	"Game Programming Patterns|Robert Nystrom|ebook|24.99|2014",
	"Writing an Interpreter in Go|Thorsten Ball|ebook|27.00|2016",
	"Writing a Compiler in Go|Thorsten Ball|ebook|29.00|2018",
	"100 Go Mistakes and How to Avoid Them|Teiva Harsanyi|book|49.99|2022",
	"Let's Go|Alex Edwards|ebook|39.00|2022",
	"Let's Go Further|Alex Edwards|ebook|49.00|2022",
}

var seedFileName = flag.String("src", "", "file of seed records")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// parseRecord turns a pipe-delimited seed line into a material. The id
// is derived from the line content so reseeding is idempotent.
func parseRecord(line string) (*core.Material, bool) {
	fields := strings.Split(line, "|")
	if len(fields) < 5 {
		return nil, false
	}

	materialType, err := core.ParseMaterialType(fields[2])
	if err != nil {
		return nil, false
	}
	price, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return nil, false
	}
	year, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, false
	}

	material := &core.Material{
		Id:      core.IDFromContent(line),
		Title:   fields[0],
		Creator: fields[1],
		Price:   price,
		Year:    year,
		Type:    materialType,
	}

	if len(fields) >= 7 {
		duration, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, false
		}
		material.Media = &core.MediaFields{
			DurationSec: duration,
			Format:      fields[6],
		}
	}

	return material, true
}

func seed(ctx context.Context, lib *folio.Library, source iter.Seq[string]) error {
	var added, skipped int
	for line := range source {
		material, ok := parseRecord(line)
		if !ok {
			slog.Warn("skipping malformed record", "line", line)
			skipped++
			continue
		}

		wasAdded, err := lib.Add(ctx, material)
		if err != nil {
			return err
		}
		if !wasAdded {
			skipped++
			continue
		}
		added++
	}

	slog.Info("seeding complete", "added", added, "skipped", skipped)
	return nil
}

func main() {
	lib, err := folio.NewLibrary("./catalog_db")
	if err != nil {
		panic(err)
	}
	defer lib.Close()

	ctx := context.Background()

	var source iter.Seq[string]
	if seedFileName != nil && *seedFileName != "" {
		source, err = linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = linesFromSlice(records)
	}

	if err := seed(ctx, lib, source); err != nil {
		panic(err)
	}
}
