package ui

import (
	"errors"
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-grabber/internal/config"
	"github.com/ytget/yt-grabber/internal/download"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	downloadDirEntry *widget.Entry
	maxParallelEntry *widget.Entry
	resolutionSelect *widget.Select
	targetLangEntry  *widget.Entry
	maxAttemptsEntry *widget.Entry
	languageSelect   *widget.Select
	autoRevealCheck  *widget.Check

	// languageCodes maps select labels back to language codes
	languageCodes map[string]string
}

// ShowSettingsDialog builds and shows the dialog; onSaved runs after a successful save
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	sd := NewSettingsDialog(settings, localization, window)
	sd.onSaved = onSaved
	sd.Show()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:      settings,
		localization:  localization,
		window:        window,
		languageCodes: make(map[string]string),
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(l.GetText(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder("1-" + strconv.Itoa(config.MaxParallelLimit))

	sd.resolutionSelect = widget.NewSelect(download.Resolutions, nil)

	sd.targetLangEntry = widget.NewEntry()
	sd.targetLangEntry.SetPlaceHolder(config.DefaultTargetLang)
	sd.targetLangEntry.Validator = config.ValidateLanguage

	sd.maxAttemptsEntry = widget.NewEntry()
	sd.maxAttemptsEntry.SetPlaceHolder(strconv.Itoa(config.DefaultMaxAttempts))

	var languageLabels []string
	for code, label := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[label] = code
		languageLabels = append(languageLabels, label)
	}
	sort.Strings(languageLabels)
	sd.languageSelect = widget.NewSelect(languageLabels, nil)

	sd.autoRevealCheck = widget.NewCheck(l.GetText(KeyAutoReveal), nil)

	form := widget.NewForm(
		widget.NewFormItem(l.GetText(KeyDownloadDirectory), downloadDirRow),
		widget.NewFormItem(l.GetText(KeyMaxParallel), sd.maxParallelEntry),
		widget.NewFormItem(l.GetText(KeyResolution), sd.resolutionSelect),
		widget.NewFormItem(l.GetText(KeyTargetLanguage), sd.targetLangEntry),
		widget.NewFormItem(l.GetText(KeyMaxAttempts), sd.maxAttemptsEntry),
		widget.NewFormItem(l.GetText(KeyLanguage), sd.languageSelect),
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		container.NewVBox(form, sd.autoRevealCheck),
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(500, 400))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelDownloads()))
	sd.resolutionSelect.SetSelected(sd.settings.GetResolution())
	sd.targetLangEntry.SetText(sd.settings.GetTargetLanguage())
	sd.maxAttemptsEntry.SetText(strconv.Itoa(sd.settings.GetMaxAttempts()))
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if err := sd.settings.SetTargetLanguage(sd.targetLangEntry.Text); err != nil {
		dialog.ShowError(errors.New(sd.localization.GetText(KeyInvalidLanguage)+": "+sd.targetLangEntry.Text), sd.window)
		return
	}

	if downloadDir := sd.downloadDirEntry.Text; downloadDir != "" {
		sd.settings.SetDownloadDirectory(downloadDir)
	}
	if maxParallel, err := strconv.Atoi(sd.maxParallelEntry.Text); err == nil {
		sd.settings.SetMaxParallelDownloads(maxParallel)
	}
	if attempts, err := strconv.Atoi(sd.maxAttemptsEntry.Text); err == nil {
		sd.settings.SetMaxAttempts(attempts)
	}
	if sd.resolutionSelect.Selected != "" {
		sd.settings.SetResolution(sd.resolutionSelect.Selected)
	}
	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}
