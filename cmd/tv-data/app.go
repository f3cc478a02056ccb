package main

import (
	"tv-data/internal/app"
	"tv-data/internal/fetch"
	"tv-data/internal/saver"
)

// App holds application dependencies built by Wire.
type App struct {
	Config *app.Config
	Saver  saver.FrameSaver
	Fetch  *fetch.Client
}
