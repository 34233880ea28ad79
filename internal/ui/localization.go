package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyVideoURL          = "video_url"
	KeyEnterURL          = "enter_url"
	KeyChooseFolder      = "choose_folder"
	KeyResolution        = "resolution"
	KeyDownloadVideo     = "download_video"
	KeyDownloadSubtitles = "download_subtitles"
	KeyDownloadThumbnail = "download_thumbnail"
	KeyDownloadState     = "download_state"
	KeySubtitleFile      = "subtitle_file"
	KeyBrowse            = "browse"
	KeyTranslate         = "translate"
	KeyTranslateState    = "translate_state"
	KeySelectFolder      = "select_folder"
	KeySelectSubtitle    = "select_subtitle"
	KeyPleaseEnterURL    = "please_enter_url"
	KeyInvalidURL        = "invalid_url"
	KeyAlreadyInQueue    = "already_in_queue"
	KeyDone              = "done"
	KeyError             = "error"
	KeyReveal            = "reveal"
	KeyOpen              = "open"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyDownloadDirectory = "download_directory"
	KeyMaxParallel       = "max_parallel"
	KeyTargetLanguage    = "target_language"
	KeyMaxAttempts       = "max_attempts"
	KeyAutoReveal        = "auto_reveal"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeySettingsSaved     = "settings_saved"
	KeyInvalidLanguage   = "invalid_language"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language; "system" and unknown codes keep English
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "YT Grabber",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyVideoURL:          "Video URL:",
		KeyEnterURL:          "Enter YouTube URL (https://youtube.com/watch?v=...)",
		KeyChooseFolder:      "Choose folder",
		KeyResolution:        "Video resolution:",
		KeyDownloadVideo:     "Download video",
		KeyDownloadSubtitles: "Download subtitles",
		KeyDownloadThumbnail: "Download thumbnail",
		KeyDownloadState:     "Download status:",
		KeySubtitleFile:      "Subtitle file:",
		KeyBrowse:            "Browse",
		KeyTranslate:         "Translate",
		KeyTranslateState:    "Translation status:",
		KeySelectFolder:      "Choose a folder to save to!",
		KeySelectSubtitle:    "Choose a subtitle file first",
		KeyPleaseEnterURL:    "Please enter a URL",
		KeyInvalidURL:        "Invalid URL",
		KeyAlreadyInQueue:    "Already in queue",
		KeyDone:              "Done",
		KeyError:             "Error",
		KeyReveal:            "Reveal",
		KeyOpen:              "Open",
		KeyErrorOpeningFile:  "Error opening file",
		KeyDownloadDirectory: "Download Directory",
		KeyMaxParallel:       "Max Parallel Downloads",
		KeyTargetLanguage:    "Translate Into",
		KeyMaxAttempts:       "Attempts Per Line",
		KeyAutoReveal:        "Reveal translated files when done",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyInvalidLanguage:   "Unknown language code",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "YT Грабер",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyVideoURL:          "URL видео:",
		KeyEnterURL:          "Введите URL YouTube (https://youtube.com/watch?v=...)",
		KeyChooseFolder:      "Выбрать папку",
		KeyResolution:        "Выберите разрешение видео:",
		KeyDownloadVideo:     "Скачать видео",
		KeyDownloadSubtitles: "Скачать титры",
		KeyDownloadThumbnail: "Скачать обложку",
		KeyDownloadState:     "Состояние загрузки:",
		KeySubtitleFile:      "Выберите файл титров:",
		KeyBrowse:            "Обзор",
		KeyTranslate:         "Перевести",
		KeyTranslateState:    "Состояние перевода:",
		KeySelectFolder:      "Выберите папку для сохранения!",
		KeySelectSubtitle:    "Сначала выберите файл титров",
		KeyPleaseEnterURL:    "Пожалуйста, введите URL",
		KeyInvalidURL:        "Неверный URL",
		KeyAlreadyInQueue:    "Уже в очереди",
		KeyDone:              "Готово",
		KeyError:             "Ошибка",
		KeyReveal:            "Показать",
		KeyOpen:              "Открыть",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeyDownloadDirectory: "Папка загрузки",
		KeyMaxParallel:       "Макс. параллельных",
		KeyTargetLanguage:    "Язык перевода",
		KeyMaxAttempts:       "Попыток на строку",
		KeyAutoReveal:        "Показывать переведённые файлы по завершении",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyInvalidLanguage:   "Неизвестный код языка",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "YT Grabber",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyVideoURL:          "URL do vídeo:",
		KeyEnterURL:          "Digite URL do YouTube (https://youtube.com/watch?v=...)",
		KeyChooseFolder:      "Escolher pasta",
		KeyResolution:        "Resolução do vídeo:",
		KeyDownloadVideo:     "Baixar vídeo",
		KeyDownloadSubtitles: "Baixar legendas",
		KeyDownloadThumbnail: "Baixar miniatura",
		KeyDownloadState:     "Estado do download:",
		KeySubtitleFile:      "Arquivo de legendas:",
		KeyBrowse:            "Navegar",
		KeyTranslate:         "Traduzir",
		KeyTranslateState:    "Estado da tradução:",
		KeySelectFolder:      "Escolha uma pasta para salvar!",
		KeySelectSubtitle:    "Escolha primeiro um arquivo de legendas",
		KeyPleaseEnterURL:    "Por favor, digite uma URL",
		KeyInvalidURL:        "URL inválida",
		KeyAlreadyInQueue:    "Já na fila",
		KeyDone:              "Concluído",
		KeyError:             "Erro",
		KeyReveal:            "Mostrar",
		KeyOpen:              "Abrir",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
		KeyDownloadDirectory: "Diretório de Download",
		KeyMaxParallel:       "Max Downloads Paralelos",
		KeyTargetLanguage:    "Traduzir para",
		KeyMaxAttempts:       "Tentativas por linha",
		KeyAutoReveal:        "Mostrar arquivos traduzidos ao concluir",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyInvalidLanguage:   "Código de idioma desconhecido",
	}
}
