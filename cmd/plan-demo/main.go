// README: CLI demo; runs the planning pipeline once against live services.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/n3utr7no/Kaze-AI/internal/ai"
	"github.com/n3utr7no/Kaze-AI/internal/config"
	"github.com/n3utr7no/Kaze-AI/internal/modules/intake"
	"github.com/n3utr7no/Kaze-AI/internal/modules/itinerary"
	"github.com/n3utr7no/Kaze-AI/internal/modules/routing"
	"github.com/n3utr7no/Kaze-AI/internal/service"
	"github.com/n3utr7no/Kaze-AI/internal/weather"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	completion, err := ai.NewClient(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("init completion client: %v", err)
	}
	retrying := ai.NewRetryingClient(completion)

	planner := service.NewPlanner(
		routing.NewService(retrying, cfg.AI.RoutingModel),
		itinerary.NewGenerator(retrying, cfg.AI.GenerationModel),
		itinerary.NewTranslator(retrying, cfg.AI.RoutingModel),
		weather.NewResolver(weather.NewClient(cfg.Weather)),
	)

	text := "What's it like in Paris tomorrow?"
	if len(os.Args) > 1 {
		text = strings.Join(os.Args[1:], " ")
	}
	fmt.Printf("User: %s\n\n", text)

	resp, err := planner.GeneratePlan(ctx, intake.PlanRequest{
		Text:     text,
		Category: intake.DefaultCategory,
		Language: intake.DefaultLanguage,
	})
	if err != nil {
		log.Fatalf("generate plan: %v", err)
	}

	fmt.Printf("City: %s\n", resp.City)
	fmt.Printf("Weather: %s, %s°C (%s)\n", resp.Weather.Cond, resp.Weather.Temp, resp.Weather.Date)
	if resp.UserTranslation != "" {
		fmt.Printf("Translation: %s\n", resp.UserTranslation)
	}
	for _, code := range []string{"en", "ja"} {
		block := resp.Content[code]
		fmt.Printf("\n[%s] %s\n%s\n", code, block.Title, block.Intro)
		if block.Report != "" {
			fmt.Println(block.Report)
		}
		for _, item := range block.TimelineData {
			fmt.Printf("  %s", item.Text)
			if item.Coords != nil {
				fmt.Printf(" (%.4f, %.4f)", item.Coords.Lat, item.Coords.Lon)
			}
			fmt.Println()
		}
	}
}
