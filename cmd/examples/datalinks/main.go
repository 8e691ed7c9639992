package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/goliatone/go-datalinks/pkg/commands"
	"github.com/goliatone/go-datalinks/pkg/config"
	"github.com/goliatone/go-datalinks/pkg/domain"
	"github.com/goliatone/go-datalinks/pkg/frame"
	"github.com/goliatone/go-datalinks/pkg/interfaces/logger"
	"github.com/goliatone/go-datalinks/pkg/suppliers"
	"github.com/goliatone/go-datalinks/pkg/timerange"
	"github.com/goliatone/go-datalinks/pkg/variables"
)

func main() {
	cfg, err := config.Load(map[string]any{
		"formatting": map[string]any{"locale": "en"},
		"links":      map[string]any{"observe": false, "log_resolved": true},
	})
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	vars, err := variables.NewProvider(
		variables.Snapshot{Scope: variables.DashboardScope(), Data: map[string]any{
			"region": "eu-west",
			"hosts":  []any{"web-1", "web-2"},
		}},
		variables.Snapshot{Scope: variables.PanelScope(), Data: map[string]any{
			"region": "eu-central",
		}},
	)
	if err != nil {
		log.Fatalf("variables: %v", err)
	}

	window, err := timerange.Relative("now-6h", "now", time.Now)
	if err != nil {
		log.Fatalf("time range: %v", err)
	}

	svc, err := suppliers.New(suppliers.Dependencies{
		TimeRange: window,
		Variables: vars,
		Logger:    logger.New(logger.WithLevel(logger.LevelDebug)),
		Config:    &cfg,
	})
	if err != nil {
		log.Fatalf("suppliers: %v", err)
	}

	decimals := 3
	fr := &frame.Frame{
		Name: "power",
		Fields: []*frame.Field{
			{Name: "Time", Type: frame.FieldTypeTime, Values: []any{time.Now().Add(-time.Minute), time.Now()}},
			{
				Name:   "Power",
				Values: []any{100.2000001, 200},
				Config: frame.FieldConfig{Unit: "kW", Decimals: &decimals},
			},
			{
				Name:   "Last",
				Values: []any{"a", "b"},
				Config: frame.FieldConfig{Links: []domain.LinkConfig{
					{Title: "Power ${__cell.Power}", URL: "http://go/${__cell.Power.numeric}?${__url_time_range}"},
					{Title: "Dashboard", URL: "/d/overview?${__all_variables}&token=${token}", TargetBlank: true},
					{Title: "Literal", URL: "http://go/${__cell[1]}"},
				}},
			},
		},
	}

	supplier := svc.ForDisplay(suppliers.FieldDisplay{Frame: fr, RowIndex: 0, ColIndex: 2})
	printLinks("row mode", supplier.GetLinks(map[string]string{"token": "s3cr3t-value"}))

	registry, err := commands.New(commands.Dependencies{Links: svc})
	if err != nil {
		log.Fatalf("commands: %v", err)
	}
	var out []domain.ResolvedLink
	if err := registry.ResolveLinks.Execute(context.Background(), commands.ResolveLinks{
		Frame:    fr,
		Field:    "Last",
		RowIndex: 1,
		Result:   &out,
	}); err != nil {
		log.Fatalf("resolve command: %v", err)
	}
	printLinks("command", out)
}

func printLinks(label string, links []domain.ResolvedLink) {
	encoded, _ := json.MarshalIndent(links, "", "  ")
	fmt.Printf("%s\n%s\n\n", label, encoded)
}
