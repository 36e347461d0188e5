package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/pnid-engine/pkg/config"
	"github.com/dd0wney/pnid-engine/pkg/engine"
	"github.com/dd0wney/pnid-engine/pkg/ingest"
	"github.com/dd0wney/pnid-engine/pkg/logging"
	"github.com/dd0wney/pnid-engine/pkg/metrics"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginTop(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginLeft(2)
)

func main() {
	componentsPath := flag.String("components", "components.csv", "Component CSV file")
	pipesPath := flag.String("pipes", "pipes.csv", "Pipe CSV file")
	configPath := flag.String("config", "", "Drawing config YAML (defaults apply if omitted)")
	flag.Parse()

	log := logging.NewDefaultLogger()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("config: %v", err)))
			os.Exit(1)
		}
		cfg = loaded
	}

	comps, err := ingest.LoadComponentsCSV(*componentsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("load components: %v", err)))
		os.Exit(1)
	}
	pipes, err := ingest.LoadPipesCSV(*pipesPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("load pipes: %v", err)))
		os.Exit(1)
	}

	m, err := ingest.BuildModel(comps, pipes, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("build model: %v", err)))
		os.Exit(1)
	}

	e := engine.New(cfg, log, metrics.NewRegistry())
	result := e.Analyze(m)

	fmt.Println(titleStyle.Render("P&ID Analysis"))
	fmt.Println(detailStyle.Render(fmt.Sprintf("run %s | %d components, %d pipes",
		result.Report.RunID, len(m.Components), len(m.Pipes))))

	fmt.Println(sectionStyle.Render(fmt.Sprintf("Control Loops (%d)", len(result.Loops))))
	for _, loop := range result.Loops {
		fmt.Println(detailStyle.Render(fmt.Sprintf("%s  %s: %s -> %s -> %s",
			loop.LoopID, loop.Type, loop.PrimaryElement, loop.Controller, loop.FinalElement)))
	}

	fmt.Println(sectionStyle.Render(fmt.Sprintf("Interlocks (%d)", len(result.Interlocks))))
	for _, il := range result.Interlocks {
		fmt.Println(detailStyle.Render(fmt.Sprintf("%s  %s -> %s", il.Type, il.Alarm, il.Action)))
	}

	fmt.Println(sectionStyle.Render("Validation"))
	for _, msg := range result.Report.Errors {
		fmt.Println(detailStyle.Render(errorStyle.Render("ERROR   ") + msg))
	}
	for _, msg := range result.Report.Warnings {
		fmt.Println(detailStyle.Render(warnStyle.Render("WARNING ") + msg))
	}

	if result.Report.Valid {
		fmt.Println(successStyle.Render(fmt.Sprintf("\nValidation passed (%d warnings)",
			len(result.Report.Warnings))))
		return
	}

	fmt.Println(errorStyle.Render(fmt.Sprintf("\nValidation failed: %d errors, %d warnings",
		len(result.Report.Errors), len(result.Report.Warnings))))
	os.Exit(1)
}
