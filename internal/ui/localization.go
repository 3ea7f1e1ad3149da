package ui

import (
	"fmt"

	"github.com/ytget/yt-archiver/internal/model"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyEnterURLLabel     = "enter_url_label"
	KeyEnterURL          = "enter_url"
	KeySelectFormat      = "select_format"
	KeyDownload          = "download"
	KeyFailedDownloads   = "failed_downloads"
	KeyFailedEntry       = "failed_entry"
	KeyReady             = "ready"
	KeyStarting          = "starting"
	KeyProgressPercent   = "progress_percent"
	KeyProgressBytes     = "progress_bytes"
	KeyFinishing         = "finishing"
	KeyCreatingArchive   = "creating_archive"
	KeyDownloadedCount   = "downloaded_count"
	KeyDownloadingFile   = "downloading_file"
	KeySaveArchiveTitle  = "save_archive_title"
	KeySuccessTitle      = "success_title"
	KeyCompletedMessage  = "completed_message"
	KeyFailedCountLine   = "failed_count_line"
	KeySavedAsLine       = "saved_as_line"
	KeyUploadedLine      = "uploaded_line"
	KeyCancelledTitle    = "cancelled_title"
	KeySaveCancelled     = "save_cancelled"
	KeyErrorTitle        = "error_title"
	KeyErrorOccurred     = "error_occurred"
	KeyShowInFolder      = "show_in_folder"
	KeyClose             = "close"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyArchiveDirectory  = "archive_directory"
	KeyDefaultTier       = "default_tier"
	KeyFFmpegLocation    = "ffmpeg_location"
	KeyFFmpegPlaceholder = "ffmpeg_placeholder"
	KeyFilenameTemplate  = "filename_template"
	KeyRevealOnComplete  = "reveal_on_complete"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
	KeyInvalidURL        = "invalid_url"
	KeyPleaseEnterURL    = "please_enter_url"
	KeySessionRunning    = "session_running"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyTierVideoHigh     = "tier_video_high"
	KeyTierVideoMedium   = "tier_video_medium"
	KeyTierVideoLow      = "tier_video_low"
	KeyTierAudioOnly     = "tier_audio_only"
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

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
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

	// Final fallback - return key itself
	return key
}

// Format returns the localized format string for key applied to args
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// TierLabel returns the localized label of a tier
func (l *Localization) TierLabel(tier model.FormatTier) string {
	switch tier {
	case model.TierVideoHigh:
		return l.GetText(KeyTierVideoHigh)
	case model.TierVideoMedium:
		return l.GetText(KeyTierVideoMedium)
	case model.TierVideoLow:
		return l.GetText(KeyTierVideoLow)
	case model.TierAudioOnly:
		return l.GetText(KeyTierAudioOnly)
	default:
		return string(tier)
	}
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
		KeyAppTitle:          "YT Archiver",
		KeyEnterURLLabel:     "Enter URL:",
		KeyEnterURL:          "https://youtube.com/watch?v=... or a playlist link",
		KeySelectFormat:      "Select Format:",
		KeyDownload:          "Download",
		KeyFailedDownloads:   "Failed Downloads:",
		KeyFailedEntry:       "Failed: %s",
		KeyReady:             "Ready to download",
		KeyStarting:          "Starting download...",
		KeyProgressPercent:   "Progress: %.1f%%",
		KeyProgressBytes:     "Downloaded: %s MB",
		KeyFinishing:         "Download finished, processing...",
		KeyCreatingArchive:   "Creating zip file...",
		KeyDownloadedCount:   "Downloaded: %d of %d",
		KeyDownloadingFile:   "Downloading: %s",
		KeySaveArchiveTitle:  "Save Media As",
		KeySuccessTitle:      "Success",
		KeyCompletedMessage:  "Download completed!\nSuccessfully downloaded: %d files.",
		KeyFailedCountLine:   "Failed downloads: %d files.",
		KeySavedAsLine:       "Saved as: %s",
		KeyUploadedLine:      "Uploaded to: %s",
		KeyCancelledTitle:    "Cancelled",
		KeySaveCancelled:     "Save operation was cancelled.",
		KeyErrorTitle:        "Error",
		KeyErrorOccurred:     "An error occurred:\n%s",
		KeyShowInFolder:      "Show in folder",
		KeyClose:             "Close",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyArchiveDirectory:  "Archive Directory",
		KeyDefaultTier:       "Default Format",
		KeyFFmpegLocation:    "FFmpeg Location",
		KeyFFmpegPlaceholder: "Leave empty to search PATH",
		KeyFilenameTemplate:  "Filename Template",
		KeyRevealOnComplete:  "Show archive in folder when done",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyInvalidURL:        "Invalid URL",
		KeyPleaseEnterURL:    "Please enter a URL",
		KeySessionRunning:    "A download is already running",
		KeyErrorOpeningFile:  "Error opening file",
		KeyTierVideoHigh:     "Video - 1440p",
		KeyTierVideoMedium:   "Video - 1080p",
		KeyTierVideoLow:      "Video - 720p",
		KeyTierAudioOnly:     "Audio Only (MP3)",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "YT Архиватор",
		KeyEnterURLLabel:     "Введите URL:",
		KeyEnterURL:          "https://youtube.com/watch?v=... или ссылка на плейлист",
		KeySelectFormat:      "Выберите формат:",
		KeyDownload:          "Скачать",
		KeyFailedDownloads:   "Ошибки загрузки:",
		KeyFailedEntry:       "Ошибка: %s",
		KeyReady:             "Готово к загрузке",
		KeyStarting:          "Начинаем загрузку...",
		KeyProgressPercent:   "Прогресс: %.1f%%",
		KeyProgressBytes:     "Загружено: %s МБ",
		KeyFinishing:         "Загрузка завершена, обработка...",
		KeyCreatingArchive:   "Создание zip-архива...",
		KeyDownloadedCount:   "Загружено: %d из %d",
		KeyDownloadingFile:   "Загрузка: %s",
		KeySaveArchiveTitle:  "Сохранить как",
		KeySuccessTitle:      "Готово",
		KeyCompletedMessage:  "Загрузка завершена!\nУспешно загружено файлов: %d.",
		KeyFailedCountLine:   "Не удалось загрузить файлов: %d.",
		KeySavedAsLine:       "Сохранено: %s",
		KeyUploadedLine:      "Загружено в: %s",
		KeyCancelledTitle:    "Отменено",
		KeySaveCancelled:     "Сохранение отменено.",
		KeyErrorTitle:        "Ошибка",
		KeyErrorOccurred:     "Произошла ошибка:\n%s",
		KeyShowInFolder:      "Показать в папке",
		KeyClose:             "Закрыть",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyArchiveDirectory:  "Папка архивов",
		KeyDefaultTier:       "Формат по умолчанию",
		KeyFFmpegLocation:    "Путь к FFmpeg",
		KeyFFmpegPlaceholder: "Оставьте пустым для поиска в PATH",
		KeyFilenameTemplate:  "Шаблон имени файла",
		KeyRevealOnComplete:  "Показывать архив в папке после сохранения",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyInvalidURL:        "Неверный URL",
		KeyPleaseEnterURL:    "Пожалуйста, введите URL",
		KeySessionRunning:    "Загрузка уже выполняется",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeyTierVideoHigh:     "Видео - 1440p",
		KeyTierVideoMedium:   "Видео - 1080p",
		KeyTierVideoLow:      "Видео - 720p",
		KeyTierAudioOnly:     "Только аудио (MP3)",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "YT Archiver",
		KeyEnterURLLabel:     "Digite a URL:",
		KeyEnterURL:          "https://youtube.com/watch?v=... ou link de playlist",
		KeySelectFormat:      "Selecione o formato:",
		KeyDownload:          "Baixar",
		KeyFailedDownloads:   "Downloads com falha:",
		KeyFailedEntry:       "Falhou: %s",
		KeyReady:             "Pronto para baixar",
		KeyStarting:          "Iniciando download...",
		KeyProgressPercent:   "Progresso: %.1f%%",
		KeyProgressBytes:     "Baixado: %s MB",
		KeyFinishing:         "Download concluído, processando...",
		KeyCreatingArchive:   "Criando arquivo zip...",
		KeyDownloadedCount:   "Baixados: %d de %d",
		KeyDownloadingFile:   "Baixando: %s",
		KeySaveArchiveTitle:  "Salvar mídia como",
		KeySuccessTitle:      "Sucesso",
		KeyCompletedMessage:  "Download concluído!\nBaixados com sucesso: %d arquivos.",
		KeyFailedCountLine:   "Downloads com falha: %d arquivos.",
		KeySavedAsLine:       "Salvo como: %s",
		KeyUploadedLine:      "Enviado para: %s",
		KeyCancelledTitle:    "Cancelado",
		KeySaveCancelled:     "A operação de salvar foi cancelada.",
		KeyErrorTitle:        "Erro",
		KeyErrorOccurred:     "Ocorreu um erro:\n%s",
		KeyShowInFolder:      "Mostrar na pasta",
		KeyClose:             "Fechar",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyArchiveDirectory:  "Diretório de arquivos",
		KeyDefaultTier:       "Formato padrão",
		KeyFFmpegLocation:    "Local do FFmpeg",
		KeyFFmpegPlaceholder: "Deixe vazio para procurar no PATH",
		KeyFilenameTemplate:  "Modelo de Nome de Arquivo",
		KeyRevealOnComplete:  "Mostrar o arquivo na pasta ao concluir",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyInvalidURL:        "URL inválida",
		KeyPleaseEnterURL:    "Por favor, digite uma URL",
		KeySessionRunning:    "Um download já está em andamento",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
		KeyTierVideoHigh:     "Vídeo - 1440p",
		KeyTierVideoMedium:   "Vídeo - 1080p",
		KeyTierVideoLow:      "Vídeo - 720p",
		KeyTierAudioOnly:     "Somente áudio (MP3)",
	}
}
