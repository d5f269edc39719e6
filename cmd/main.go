package main

import (
	"github.com/himalayan-flavors/rms-svc/internal/app"
	"github.com/himalayan-flavors/rms-svc/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
