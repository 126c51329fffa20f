// README: Request orchestrator; chains sanitize -> route -> weather -> generate -> translate -> normalize.
package service

import (
	"context"
	"strings"

	"github.com/n3utr7no/Kaze-AI/internal/modules/intake"
	"github.com/n3utr7no/Kaze-AI/internal/modules/itinerary"
	"github.com/n3utr7no/Kaze-AI/internal/modules/routing"
	"github.com/n3utr7no/Kaze-AI/internal/types"
	"github.com/n3utr7no/Kaze-AI/internal/weather"
)

// Planner runs the whole pipeline for one request. Every stage is
// synchronous and sequential: weather must be resolved before generation and
// generation before translation. The planner holds no per-request state, so
// one instance serves all in-flight requests.
type Planner struct {
	router     *routing.Service
	generator  *itinerary.Generator
	translator *itinerary.Translator
	weather    *weather.Resolver
}

func NewPlanner(router *routing.Service, generator *itinerary.Generator, translator *itinerary.Translator, resolver *weather.Resolver) *Planner {
	return &Planner{
		router:     router,
		generator:  generator,
		translator: translator,
		weather:    resolver,
	}
}

// ContentBlock is one language's share of the response.
type ContentBlock struct {
	Intro        string                      `json:"intro"`
	Report       string                      `json:"report"`
	Title        string                      `json:"title"`
	TimelineData []itinerary.NormalizedEntry `json:"timeline_data"`
}

// PlanResponse is the assembled reply for /generate_plan. Content is keyed
// by language code; both "en" and "ja" are always present.
type PlanResponse struct {
	City            string                  `json:"city"`
	Weather         weather.Snapshot        `json:"weather"`
	Category        string                  `json:"category"`
	UserTranslation string                  `json:"user_translation"`
	Content         map[string]ContentBlock `json:"content"`
}

// GeneratePlan runs the pipeline. The sanitizer comes first so a rejected
// request never reaches an external service. Weather failures degrade to
// sentinel snapshots and the pipeline continues; routing, generation, and
// translation failures abort the request.
func (p *Planner) GeneratePlan(ctx context.Context, req intake.PlanRequest) (*PlanResponse, error) {
	text, err := intake.Sanitize(req.Text)
	if err != nil {
		return nil, err
	}

	analysis, err := p.router.Route(ctx, text, req.History)
	if err != nil {
		return nil, err
	}
	if !analysis.Valid() {
		return nil, routing.ErrOffDomain
	}

	city := analysis.City
	var coords *types.Point
	if city == routing.CurrentLocation {
		if req.UserLocation != nil {
			// The response city becomes whatever reverse geocoding makes of
			// the caller's coordinates.
			coords = req.UserLocation
			city = ""
		} else {
			city = routing.DefaultCity
		}
	}

	snap := p.weather.Resolve(ctx, city, analysis.DayOffset, coords)

	primary, err := p.generator.Generate(ctx, req.Category, req.Language, snap, req.History, text)
	if err != nil {
		return nil, err
	}

	primaryCode, mirrorCode, mirrorLanguage := languageSplit(req.Language)
	mirrored, err := p.translator.Translate(ctx, primary, mirrorLanguage)
	if err != nil {
		return nil, err
	}

	return &PlanResponse{
		City:            snap.CityName,
		Weather:         snap,
		Category:        req.Category,
		UserTranslation: userTranslation(analysis.Translation, text),
		Content: map[string]ContentBlock{
			primaryCode: assembleBlock(primary),
			mirrorCode:  assembleBlock(mirrored),
		},
	}, nil
}

// languageSplit maps the requested language onto the response's two content
// blocks: the primary generation goes under its own code and the translation
// mirrors it in the opposite language.
func languageSplit(language string) (primaryCode, mirrorCode, mirrorLanguage string) {
	if strings.EqualFold(language, "Japanese") {
		return "ja", "en", "English"
	}
	return "en", "ja", "Japanese"
}

// userTranslation drops a model translation that is empty or just parrots
// the input back; the client shows nothing rather than a fake translation.
func userTranslation(translation, input string) string {
	t := strings.TrimSpace(translation)
	if t == "" || t == strings.TrimSpace(input) {
		return ""
	}
	return t
}

func assembleBlock(c itinerary.Content) ContentBlock {
	return ContentBlock{
		Intro:        c.Intro,
		Report:       c.Report,
		Title:        c.Title,
		TimelineData: itinerary.Normalize(c.Timeline),
	}
}
