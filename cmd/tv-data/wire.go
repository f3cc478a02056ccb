//go:build wireinject
// +build wireinject

package main

import (
	"tv-data/internal/app"

	"github.com/google/wire"
)

// InitializeApp builds App (Config + FrameSaver + fetch client) via Wire.
func InitializeApp() (*App, error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvideFrameSaver,
		app.ProvideFetchClient,
		wire.Struct(new(App), "Config", "Saver", "Fetch"),
	)
	return nil, nil
}
