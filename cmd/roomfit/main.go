// RoomFit — Banquet Floor Planner
//
// Computes furniture layouts for polygonal rooms and produces quotes,
// floor plan PDFs, and place cards.
//
// Build:
//   go build -o roomfit ./cmd/roomfit
//
// Usage:
//   roomfit -plan hall.json                      print layout summaries
//   roomfit -plan hall.json -pattern tight       run a single pattern
//   roomfit -plan hall.json -pdf plan.pdf        export the floor plan
//   roomfit -dxf hall.dxf -out hall.json         import a DXF floor plan
//   roomfit -serve :8080                         run the HTTP API

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/roomfit/roomfit/internal/engine"
	"github.com/roomfit/roomfit/internal/export"
	"github.com/roomfit/roomfit/internal/importer"
	"github.com/roomfit/roomfit/internal/model"
	"github.com/roomfit/roomfit/internal/project"
	"github.com/roomfit/roomfit/internal/server"
)

func main() {
	planPath := flag.String("plan", "", "plan JSON file to load")
	dxfPath := flag.String("dxf", "", "DXF floor plan to import")
	outPath := flag.String("out", "", "output plan JSON for -dxf")
	pattern := flag.String("pattern", "", "layout pattern: tight, standard, or generous (default: all)")
	pdfPath := flag.String("pdf", "", "write floor plan and quote to this PDF")
	xlsxPath := flag.String("xlsx", "", "write the quote to this XLSX")
	cardsPath := flag.String("cards", "", "write place cards to this PDF")
	serveAddr := flag.String("serve", "", "listen address for the HTTP API, e.g. :8080")
	flag.Parse()

	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	switch {
	case *serveAddr != "":
		cat, _, err := project.LoadOrCreateCatalog()
		if err != nil {
			log.Fatalf("load catalog: %v", err)
		}
		srv := server.New(cat, config)
		log.Printf("RoomFit API listening on %s", *serveAddr)
		if err := srv.Router().Run(*serveAddr); err != nil {
			log.Fatal(err)
		}

	case *dxfPath != "":
		if err := importDXFPlan(*dxfPath, *outPath); err != nil {
			log.Fatal(err)
		}

	case *planPath != "":
		if err := runPlan(*planPath, *pattern, *pdfPath, *xlsxPath, *cardsPath, config); err != nil {
			log.Fatal(err)
		}

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func importDXFPlan(dxfPath, outPath string) error {
	result := importer.ImportDXF(dxfPath)
	for _, w := range result.Warnings {
		log.Printf("warning: %s", w)
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			log.Printf("error: %s", e)
		}
		return fmt.Errorf("DXF import failed")
	}

	plan := model.NewPlan()
	plan.Room = result.Room
	plan.Holes = result.Holes
	if outPath == "" {
		outPath = "imported-plan.json"
	}
	if err := project.SavePlan(outPath, plan); err != nil {
		return err
	}
	fmt.Printf("Imported %d-point room (%d holes) to %s\n", len(plan.Room), len(plan.Holes), outPath)
	fmt.Println("Set the plan's scale (px per mm) before running a layout.")
	return nil
}

func runPlan(planPath, pattern, pdfPath, xlsxPath, cardsPath string, config model.AppConfig) error {
	plan, err := project.LoadPlan(planPath)
	if err != nil {
		return err
	}
	project.RememberRecentPlan(&config, planPath, 10)
	if err := project.SaveAppConfig(project.DefaultConfigPath(), config); err != nil {
		log.Printf("save config: %v", err)
	}

	settings := engine.DefaultSettings()
	settings.ChairDepthMM = config.DefaultChairDepth
	placer := engine.New(settings)

	patterns := model.Patterns
	if pattern != "" {
		patterns = []model.LayoutPattern{model.LayoutPattern(pattern)}
	}

	layouts := map[model.LayoutPattern]model.LayoutResult{}
	for _, p := range patterns {
		items, err := placer.Place(plan.Room, plan.Holes, plan.Scale, plan.Catalog, p.AisleGapMM())
		if err != nil {
			return fmt.Errorf("pattern %s: %w", p, err)
		}
		layouts[p] = model.LayoutResult{Pattern: p, Items: items}
	}
	plan.Layouts = layouts

	fmt.Printf("%s (%d-point room", plan.Name, len(plan.Room))
	if len(plan.Holes) > 0 {
		fmt.Printf(", %d holes", len(plan.Holes))
	}
	fmt.Println(")")
	for _, p := range patterns {
		layout := layouts[p]
		quote := model.BuildQuote(layout, config.ServiceFeePct)
		fmt.Printf("  %-9s %3d tables, %3d seats, $%.2f\n", p, len(layout.Items), layout.TotalSeats(), quote.Total)
	}

	chosen := layouts[pickPattern(patterns, plan.Pattern)]
	quote := model.BuildQuote(chosen, config.ServiceFeePct)

	if pdfPath != "" {
		if err := export.ExportPDF(pdfPath, plan, chosen, quote, config.DefaultChairDepth); err != nil {
			return fmt.Errorf("export PDF: %w", err)
		}
		fmt.Printf("Wrote %s\n", pdfPath)
	}
	if xlsxPath != "" {
		if err := export.ExportQuoteXLSX(xlsxPath, plan, quote); err != nil {
			return fmt.Errorf("export XLSX: %w", err)
		}
		fmt.Printf("Wrote %s\n", xlsxPath)
	}
	if cardsPath != "" {
		if err := export.ExportPlaceCards(cardsPath, plan, chosen); err != nil {
			return fmt.Errorf("export place cards: %w", err)
		}
		fmt.Printf("Wrote %s\n", cardsPath)
	}
	return nil
}

// pickPattern prefers the plan's own pattern when it was among those run.
func pickPattern(ran []model.LayoutPattern, preferred model.LayoutPattern) model.LayoutPattern {
	for _, p := range ran {
		if p == preferred {
			return p
		}
	}
	return ran[0]
}
