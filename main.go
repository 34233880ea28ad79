package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	grabber "github.com/ytget/yt-grabber/internal/app"
	"github.com/ytget/yt-grabber/internal/config"
	"github.com/ytget/yt-grabber/internal/platform"
	"github.com/ytget/yt-grabber/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-grabber"
	AppName = "YT Grabber"

	WindowWidth  = 600
	WindowHeight = 520
)

func main() {
	log.Printf("%s v%s starting...", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	cfg, cfgPath, exists, err := config.Load("")
	if err != nil {
		log.Printf("config %s: %v; using defaults", cfgPath, err)
		defaults := config.Default()
		cfg = &defaults
	} else if exists {
		log.Printf("Loaded config from %s", cfgPath)
	}

	// Choices made in the window win over the file
	settings := config.NewSettings(myApp)
	settings.ApplyTo(cfg)
	if err := platform.CreateDirectoryIfNotExists(cfg.Download.OutputDir); err != nil {
		log.Printf("failed to ensure downloads dir: %v", err)
	}

	ui.NewRootUI(myWindow, settings, grabber.New(cfg))

	myWindow.ShowAndRun()
}
