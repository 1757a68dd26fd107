package itinerary_fx

import (
	"go.uber.org/fx"
	"tripgen/internal/services"
)

var Module = fx.Provide(
	services.NewItineraryService)
