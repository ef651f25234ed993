package idcheck

import (
	"id-check/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	plugin  *Plugin
	handler *Handler
	apiKey  string
}

// NewFeature creates the idcheck feature around an initialised plugin.
func NewFeature(plugin *Plugin, apiKey string, logger *zap.Logger) *Feature {
	return &Feature{plugin: plugin, handler: NewHandler(plugin, logger), apiKey: apiKey}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "idcheck"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.plugin != nil
}

// Load registers the feature's routes behind API key auth.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app, auth.New(auth.Config{ApiKey: f.apiKey}))
	return nil
}
