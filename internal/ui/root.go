package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-grabber/internal/app"
	"github.com/ytget/yt-grabber/internal/config"
	"github.com/ytget/yt-grabber/internal/download"
	"github.com/ytget/yt-grabber/internal/event"
	"github.com/ytget/yt-grabber/internal/model"
	"github.com/ytget/yt-grabber/internal/platform"
)

// RootUI represents the main form
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	services     *app.Services
	localization *Localization

	// Runs started from the form share one context and one event queue
	ctx    context.Context
	cancel context.CancelFunc
	events *event.Queue

	urlLabel         *widget.Label
	urlEntry         *widget.Entry
	folderEntry      *widget.Entry
	folderBtn        *widget.Button
	resolutionLabel  *widget.Label
	resolutionSelect *widget.Select
	contentButtons   map[model.ContentType]*widget.Button
	downloadLabel    *widget.Label
	downloadBar      *widget.ProgressBar
	loadingLabel     *widget.Label

	subtitleLabel  *widget.Label
	fileEntry      *widget.Entry
	fileBtn        *widget.Button
	translateBtn   *widget.Button
	translateLabel *widget.Label
	translateBar   *widget.ProgressBar

	// Touched only on the UI thread
	loading   *loadingIndicator
	downloads map[string]bool
}

// NewRootUI creates the form, starts the event pump and sets the window content
func NewRootUI(window fyne.Window, settings *config.Settings, services *app.Services) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ctx, cancel := context.WithCancel(context.Background())
	ui := &RootUI{
		window:         window,
		settings:       settings,
		services:       services,
		localization:   localization,
		ctx:            ctx,
		cancel:         cancel,
		events:         event.NewQueue(event.DefaultQueueSize),
		contentButtons: make(map[model.ContentType]*widget.Button),
		downloads:      make(map[string]bool),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()
	ui.watchTranslations()

	go pump(ui.events, ui, fyne.Do)
	window.SetOnClosed(ui.shutdown)

	log.Printf("RootUI initialized, downloads into %s", services.Config.Download.OutputDir)
	return ui
}

// shutdown cancels active runs and stops the event pump
func (ui *RootUI) shutdown() {
	ui.cancel()
	ui.events.Close()
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlLabel = widget.NewLabel("")
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.Validator = validateURL
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick(model.ContentVideo)
	}

	ui.folderEntry = widget.NewEntry()
	ui.folderEntry.SetText(ui.services.Config.Download.OutputDir)
	ui.folderBtn = widget.NewButton("", ui.onChooseFolder)

	ui.resolutionLabel = widget.NewLabel("")
	ui.resolutionSelect = widget.NewSelect(download.Resolutions, ui.settings.SetResolution)
	ui.resolutionSelect.SetSelected(ui.settings.GetResolution())

	buttons := container.NewHBox()
	for _, ct := range model.ContentTypes {
		btn := widget.NewButton("", func() { ui.onDownloadClick(ct) })
		ui.contentButtons[ct] = btn
		buttons.Add(btn)
	}
	ui.contentButtons[model.ContentVideo].Importance = widget.HighImportance

	ui.downloadLabel = widget.NewLabel("")
	ui.downloadBar = widget.NewProgressBar()
	ui.downloadBar.Max = 100
	ui.downloadBar.TextFormatter = func() string {
		return fmt.Sprintf(ProgressLabelFormat, int(ui.downloadBar.Value))
	}
	ui.loadingLabel = widget.NewLabel("")
	ui.loading = newLoadingIndicator(LoadingFrameInterval, LoadingFrames, func(frame string) {
		fyne.Do(func() { ui.loadingLabel.SetText(frame) })
	})

	ui.subtitleLabel = widget.NewLabel("")
	ui.fileEntry = widget.NewEntry()
	ui.fileBtn = widget.NewButton("", ui.onChooseSubtitleFile)
	ui.translateBtn = widget.NewButton("", ui.onTranslateClick)
	ui.translateLabel = widget.NewLabel("")
	ui.translateBar = widget.NewProgressBar()
	ui.translateBar.Max = 100
	ui.translateBar.TextFormatter = func() string {
		return fmt.Sprintf(ProgressLabelFormat, int(ui.translateBar.Value))
	}

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	form := container.NewVBox(
		container.NewBorder(nil, nil, nil, settingsBtn, ui.urlLabel),
		ui.urlEntry,
		container.NewBorder(nil, nil, ui.folderBtn, nil, ui.folderEntry),
		ui.resolutionLabel,
		ui.resolutionSelect,
		buttons,
		ui.downloadLabel,
		container.NewBorder(nil, nil, nil, ui.loadingLabel, ui.downloadBar),
		widget.NewSeparator(),
		ui.subtitleLabel,
		container.NewBorder(nil, nil, nil, ui.fileBtn, ui.fileEntry),
		ui.translateBtn,
		ui.translateLabel,
		ui.translateBar,
	)

	ui.refreshUITexts()
	ui.window.SetContent(container.NewPadded(form))
	ui.window.Resize(fyne.NewSize(WindowMinWidth, form.MinSize().Height))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(code)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange switches the interface language and persists it
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))

	ui.urlLabel.SetText(l.GetText(KeyVideoURL))
	ui.urlEntry.SetPlaceHolder(l.GetText(KeyEnterURL))
	ui.folderBtn.SetText(IconFolder + " " + l.GetText(KeyChooseFolder))
	ui.resolutionLabel.SetText(l.GetText(KeyResolution))
	ui.contentButtons[model.ContentVideo].SetText(l.GetText(KeyDownloadVideo))
	ui.contentButtons[model.ContentSubtitles].SetText(l.GetText(KeyDownloadSubtitles))
	ui.contentButtons[model.ContentThumbnail].SetText(l.GetText(KeyDownloadThumbnail))
	ui.downloadLabel.SetText(l.GetText(KeyDownloadState))

	ui.subtitleLabel.SetText(l.GetText(KeySubtitleFile))
	ui.fileBtn.SetText(IconFile + " " + l.GetText(KeyBrowse))
	ui.translateBtn.SetText(l.GetText(KeyTranslate))
	ui.translateLabel.SetText(l.GetText(KeyTranslateState))
}

// validateURL validates the entered URL
func validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil // Empty is allowed
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("URL has no host")
	}

	return nil
}

// cleanURL strips characters pasted along with a URL
func cleanURL(raw string) string {
	cleaned := strings.ReplaceAll(raw, "\n", "")
	cleaned = strings.ReplaceAll(cleaned, "\r", "")
	cleaned = strings.ReplaceAll(cleaned, "\t", " ")
	return strings.TrimSpace(cleaned)
}

// onChooseFolder picks the output folder
func (ui *RootUI) onChooseFolder() {
	folderDialog := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.folderEntry.SetText(uri.Path())
	}, ui.window)
	if current := strings.TrimSpace(ui.folderEntry.Text); current != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(current)); err == nil {
			folderDialog.SetLocation(lister)
		}
	}
	folderDialog.Show()
}

// onChooseSubtitleFile picks the subtitle file to translate
func (ui *RootUI) onChooseSubtitleFile() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		ui.fileEntry.SetText(reader.URI().Path())
	}, ui.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".srt", ".vtt", ".txt"}))
	fileDialog.Show()
}

// onDownloadClick starts a download of the given content type
func (ui *RootUI) onDownloadClick(ct model.ContentType) {
	urlText := cleanURL(ui.urlEntry.Text)
	if urlText == "" {
		ui.showFailure(ui.localization.GetText(KeyPleaseEnterURL))
		return
	}
	if err := validateURL(urlText); err != nil {
		ui.showFailure(ui.localization.GetText(KeyInvalidURL) + ": " + err.Error())
		return
	}

	folder := strings.TrimSpace(ui.folderEntry.Text)
	if folder == "" {
		ui.showFailure(ui.localization.GetText(KeySelectFolder))
		return
	}
	if err := platform.CreateDirectoryIfNotExists(folder); err != nil {
		ui.showFailure(fmt.Sprintf(ErrorMessageFormat, err))
		return
	}
	ui.settings.SetDownloadDirectory(folder)

	task, err := ui.services.Downloads.StartDownload(ui.ctx, download.Request{
		URL:         urlText,
		ContentType: ct,
		OutputDir:   folder,
		Resolution:  ui.resolutionSelect.Selected,
	}, ui.events)
	if err != nil {
		if errors.Is(err, download.ErrDuplicateRun) {
			ui.showFailure(ui.localization.GetText(KeyAlreadyInQueue))
		} else {
			ui.showFailure(fmt.Sprintf(ErrorMessageFormat, err))
		}
		return
	}

	log.Printf("Download task %s started for %s (%s)", task.ID, task.URL, ct)
	ui.downloads[task.ID] = true
	ui.loading.begin()
}

// onTranslateClick translates the selected subtitle file
func (ui *RootUI) onTranslateClick() {
	path := strings.TrimSpace(ui.fileEntry.Text)
	if path == "" {
		ui.showFailure(ui.localization.GetText(KeySelectSubtitle))
		return
	}

	task, err := ui.services.Translations.StartTranslation(ui.ctx, path, ui.settings.GetTargetLanguage(), ui.events)
	if err != nil {
		ui.showFailure(fmt.Sprintf(ErrorMessageFormat, err))
		return
	}
	log.Printf("Translation task %s started for %s", task.ID, path)
	ui.setTranslating(true)
}

// watchTranslations keeps the translate button disabled while a run is
// active. It has to be called again after the service is rebuilt.
func (ui *RootUI) watchTranslations() {
	ui.services.Translations.SetUpdateCallback(func(task *model.TranslationTask) {
		active := !task.Status.IsFinished()
		fyne.Do(func() { ui.setTranslating(active) })
	})
}

func (ui *RootUI) setTranslating(active bool) {
	if active {
		ui.translateBtn.Disable()
	} else {
		ui.translateBtn.Enable()
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.settings.ApplyTo(ui.services.Config)
		ui.services.Downloads.SetMaxParallelDownloads(ui.services.Config.Download.MaxParallel)
		ui.services.Downloads.SetDownloadDirectory(ui.services.Config.Download.OutputDir)
		ui.services.ReloadTranslations()
		ui.watchTranslations()

		ui.folderEntry.SetText(ui.services.Config.Download.OutputDir)
		ui.resolutionSelect.SetSelected(ui.services.Config.Download.Resolution)
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	})
}

func (ui *RootUI) setDownloadPercent(percent int) {
	ui.downloadBar.SetValue(float64(percent))
}

func (ui *RootUI) setTranslatePercent(percent int) {
	ui.translateBar.SetValue(float64(percent))
}

// downloadEnded stops the loading indicator once the run's last event arrived
func (ui *RootUI) downloadEnded(runID string) {
	if !ui.downloads[runID] {
		return
	}
	delete(ui.downloads, runID)
	ui.loading.end()
}

// showResult shows a completion popup; translated files can be revealed
func (ui *RootUI) showResult(kind event.Kind, message, path string) {
	fyne.CurrentApp().SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyAppTitle),
		Content: message,
	})

	if path == "" {
		dialog.ShowInformation(ui.localization.GetText(KeyDone), message, ui.window)
		return
	}

	if kind == event.KindTranslateFinished && ui.settings.GetAutoRevealOnComplete() {
		ui.onRevealFile(path)
	}

	content := container.NewVBox(
		widget.NewLabel(message),
		container.NewHBox(
			widget.NewButton(ui.localization.GetText(KeyReveal), func() { ui.onRevealFile(path) }),
			widget.NewButton(ui.localization.GetText(KeyOpen), func() { ui.onOpenFile(path) }),
		),
	)
	resultDialog := dialog.NewCustom(ui.localization.GetText(KeyDone), IconClose, content, ui.window)
	resultDialog.Resize(fyne.NewSize(ResultPopupW, ResultPopupH))
	resultDialog.Show()
}

// showFailure shows an error popup
func (ui *RootUI) showFailure(message string) {
	dialog.ShowError(errors.New(message), ui.window)
}

// onRevealFile reveals a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Printf("Reveal %s: %v", filePath, err)
		ui.showFailure(ui.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// onOpenFile opens a file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		log.Printf("Open %s: %v", filePath, err)
		ui.showFailure(ui.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
	}
}
