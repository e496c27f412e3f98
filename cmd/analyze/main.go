// Package main is a command-line front end: extract the text of a local PDF
// and run one analysis task on it, without starting the server.
//
//	analyze --in report.pdf --task "Word Count Statistics"
//	analyze --in report.pdf --task Encryption --shift 5
//	analyze --in report.pdf --task "Word Cloud" --out ./results
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/Shimizu-Technology/text-analyzer-api/internal/app"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/config"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/logger"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/keywords"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/nlp"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/services/pdf"
	"github.com/Shimizu-Technology/text-analyzer-api/internal/tasks"
)

var (
	cli  = kingpin.New("analyze", "extract the text of a PDF and run one analysis task on it")
	args = struct {
		input   *string
		task    *string
		ratio   *float64
		shift   *int
		text2   *string
		query   *string
		out     *string
		preview *int
	}{
		input: cli.Flag("in", "PDF file to analyze").Short('i').Required().ExistingFile(),
		task: cli.Flag("task", "task to run").Short('t').Required().
			Enum(lo.Map(tasks.Labels, func(l tasks.Label, _ int) string { return string(l) })...),
		ratio:   cli.Flag("ratio", "Summarization: fraction of sentences to keep").Default("0.3").Float64(),
		shift:   cli.Flag("shift", "Encryption: Caesar shift (1-25)").Default("3").Int(),
		text2:   cli.Flag("text2", "Text Similarity Check: text to compare against").String(),
		query:   cli.Flag("query", "Topic Description: topic to look up (defaults to the document text)").String(),
		out:     cli.Flag("out", "directory for audio and image results").Short('o').Default(".").ExistingDir(),
		preview: cli.Flag("preview", "characters of extracted text to print").Default("300").Int(),
	}
)

func main() {
	kingpin.MustParse(cli.Parse(os.Args[1:]))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	task, err := tasks.Parse(*args.task, tasks.Params{
		Ratio: args.ratio,
		Shift: args.shift,
		Text2: *args.text2,
		Query: *args.query,
	})
	if err != nil {
		kingpin.Fatalf("%v", err)
	}

	data, err := os.ReadFile(*args.input)
	if err != nil {
		log.Fatalf("❌ Failed to read %s: %v", *args.input, err)
	}

	result, err := extract(data)
	if err != nil {
		var parseErr *pdf.ParseError
		if errors.As(err, &parseErr) {
			color.Red("Failed to parse PDF: %v", parseErr.Err)
			os.Exit(1)
		}
		log.Fatalf("❌ Extraction failed: %v", err)
	}

	color.Cyan("\n%s: %d pages, %d words", filepath.Base(*args.input), result.PageCount, result.WordCount)
	fmt.Println(preview(result.Text, *args.preview))
	fmt.Println()

	dispatcher, err := app.NewDispatcher(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to create services: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	spinner := getSpinner(string(task.Label()))
	outcome, err := dispatcher.Run(ctx, task, result.Text)
	_ = spinner.Finish()
	if err != nil {
		log.Fatalf("❌ Task could not run: %v", err)
	}

	if err := writeOutcome(os.Stdout, outcome, *args.out); err != nil {
		log.Fatalf("❌ %v", err)
	}
	if outcome.Notice != nil && outcome.Notice.Level == tasks.LevelError {
		os.Exit(2)
	}
}

// extract runs the document loader with a page progress bar.
func extract(data []byte) (*pdf.ExtractionResult, error) {
	var bar *progressbar.ProgressBar
	result, err := pdf.ExtractWithProgress(data, func(page, total int) {
		// The page count is only known once the reader is open.
		if bar == nil {
			bar = getProgressBar(total, "📄 Extracting pages")
		}
		_ = bar.Set(page)
	})
	if bar != nil {
		_ = bar.Finish()
	}
	return result, err
}

func getProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("pages"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func getSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
}

// preview returns the first n characters of text, marking a cut with "...".
func preview(text string, n int) string {
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n]) + "..."
}

// writeOutcome prints an outcome: tables for list and stats results, plain
// lines for text, and files under dir for audio and images.
func writeOutcome(w io.Writer, out *tasks.Outcome, dir string) error {
	switch {
	case out.Keywords != nil:
		rows := lo.Map(out.Keywords, func(k keywords.Keyword, _ int) []string {
			return []string{k.Term, strconv.FormatFloat(k.Score, 'f', 3, 64)}
		})
		renderTable(w, []string{"Keyword", "Score"}, rows)

	case len(out.Entities) > 0:
		rows := lo.Map(out.Entities, func(e nlp.Entity, _ int) []string {
			return []string{e.Text, e.Label}
		})
		renderTable(w, []string{"Entity", "Label"}, rows)

	case out.Stats != nil:
		renderTable(w, []string{"Metric", "Value"}, [][]string{
			{"Total Words", strconv.Itoa(out.Stats.TotalWords)},
			{"Unique Words", strconv.Itoa(out.Stats.UniqueWords)},
			{"Total Sentences", strconv.Itoa(out.Stats.Sentences)},
			{"Average Word Length", strconv.FormatFloat(out.Stats.AverageWordLength, 'f', 2, 64)},
		})

	case out.Audio != nil:
		path := filepath.Join(dir, out.Audio.Filename)
		if err := os.WriteFile(path, out.Audio.Data, 0o644); err != nil {
			return fmt.Errorf("failed to save audio: %w", err)
		}
		fmt.Fprintln(w, color.GreenString("✓ Saved %s (%d bytes)", path, len(out.Audio.Data)))

	case len(out.Image) > 0:
		path := filepath.Join(dir, "wordcloud.png")
		if err := os.WriteFile(path, out.Image, 0o644); err != nil {
			return fmt.Errorf("failed to save image: %w", err)
		}
		fmt.Fprintln(w, color.GreenString("✓ Saved %s (%d bytes)", path, len(out.Image)))

	default:
		// Lines ends with the notice message; it is printed in colour below.
		lines := out.Lines()
		if out.Notice != nil && len(lines) > 0 {
			lines = lines[:len(lines)-1]
		}
		for _, line := range lines {
			fmt.Fprintln(w, line)
		}
	}

	if n := out.Notice; n != nil {
		switch n.Level {
		case tasks.LevelError:
			fmt.Fprintln(w, color.RedString("%s", n.Message))
		case tasks.LevelWarning:
			fmt.Fprintln(w, color.YellowString("%s", n.Message))
		default:
			fmt.Fprintln(w, color.CyanString("%s", n.Message))
		}
	}
	return nil
}

func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
}
