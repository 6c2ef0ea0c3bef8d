// Package charts renders interactive HTML charts for generated decks.
package charts

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ramonehamilton/deckforge/internal/deck/sampler"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title      string   // Chart title
	Subtitle   string   // Chart subtitle
	Width      string   // Chart width (e.g., "900px")
	Height     string   // Chart height (e.g., "500px")
	Theme      string   // Chart theme
	ShowLegend bool     // Show legend
	Colors     []string // Custom colors
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:      "900px",
		Height:     "500px",
		Theme:      "light",
		ShowLegend: true,
		Colors:     []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666", "#73C0DE", "#3BA272", "#FC8452", "#9A60B4", "#EA7CCC"},
	}
}

// manaColorNames maps WUBRG symbols to display names.
var manaColorNames = map[string]string{
	"W": "White",
	"U": "Blue",
	"B": "Black",
	"R": "Red",
	"G": "Green",
	"C": "Colorless",
}

// RenderManaCurve creates a bar chart of the deck's mana curve.
func RenderManaCurve(deck *sampler.Deck, config ChartConfig, outputPath string) error {
	if deck == nil {
		return fmt.Errorf("deck cannot be nil")
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
		charts.WithColorsOpts(opts.Colors{
			config.Colors[0],
		}),
	)

	buckets := sampler.ManaCurveBuckets
	yData := make([]opts.BarData, len(buckets))
	for i, bucket := range buckets {
		yData[i] = opts.BarData{Value: deck.Stats.ManaCurve[bucket]}
	}

	bar.SetXAxis(buckets).
		AddSeries("Cards", yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:     opts.Bool(true),
				Position: "top",
			}),
		)

	return renderToFile(bar, outputPath)
}

// RenderColorDistribution creates a pie chart of the deck's color spread,
// counting each non-land card once per color it carries.
func RenderColorDistribution(deck *sampler.Deck, config ChartConfig, outputPath string) error {
	if deck == nil {
		return fmt.Errorf("deck cannot be nil")
	}

	counts := make(map[string]int)
	for _, entry := range deck.Entries {
		if entry.IsSideboard || entry.Card == nil || entry.Card.IsLand() {
			continue
		}
		for _, color := range entry.Card.EffectiveColors() {
			counts[color] += entry.Count
		}
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
	)

	var pieData []opts.PieData
	for _, symbol := range []string{"W", "U", "B", "R", "G", "C"} {
		if count, ok := counts[symbol]; ok && count > 0 {
			pieData = append(pieData, opts.PieData{
				Name:  manaColorNames[symbol],
				Value: count,
			})
		}
	}
	if len(pieData) == 0 {
		return fmt.Errorf("deck has no colored cards to chart")
	}

	pie.AddSeries("Colors", pieData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}: {c}",
			}),
		)

	return renderToFile(pie, outputPath)
}

// RenderCategoryBreakdown creates a bar chart of card counts per category.
func RenderCategoryBreakdown(deck *sampler.Deck, config ChartConfig, outputPath string) error {
	if deck == nil {
		return fmt.Errorf("deck cannot be nil")
	}

	var (
		labels []string
		yData  []opts.BarData
	)
	for category, count := range deck.Stats.Categories {
		if count == 0 {
			continue
		}
		labels = append(labels, string(category))
		yData = append(yData, opts.BarData{Value: count})
	}
	if len(labels) == 0 {
		return fmt.Errorf("deck has no cards to chart")
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithColorsOpts(opts.Colors{
			config.Colors[1%len(config.Colors)],
		}),
	)

	bar.SetXAxis(labels).
		AddSeries("Cards", yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:     opts.Bool(true),
				Position: "top",
			}),
		)

	return renderToFile(bar, outputPath)
}

type renderer interface {
	Render(w io.Writer) error
}

func renderToFile(chart renderer, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := chart.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	return nil
}

// OpenInBrowser opens the given file path in the default web browser.
func OpenInBrowser(filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", absPath)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", absPath)
	case "linux":
		cmd = exec.Command("xdg-open", absPath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
