package ui

import (
	"os"
	"strings"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle      = "app_title"
	KeyNoMusic       = "no_music"
	KeyShowTraffic   = "show_traffic"
	KeyShowSystem    = "show_system"
	KeyMusicSection  = "music_section"
	KeyMusicAlways   = "music_always"
	KeyMusicAuto     = "music_auto"
	KeyVisualizer    = "visualizer"
	KeyQuit          = "quit"
	KeyPrevious      = "previous"
	KeyPlayPause     = "play_pause"
	KeyNext          = "next"
	KeyPresetDefault = "preset_default"
	KeyPresetBass    = "preset_bass"
	KeyPresetTreble  = "preset_treble"
	KeyPresetRock    = "preset_rock"
	KeyPresetPop     = "preset_pop"
	KeySettings      = "settings"
	KeySave          = "save"
	KeyCancel        = "cancel"
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

// SetLanguage sets the current language. "system" picks the language from
// LC_ALL, LC_MESSAGES or LANG.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" || lang == "" {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// systemLanguage extracts the two-letter code from the POSIX locale, e.g. ru_RU.UTF-8
func systemLanguage() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(env)
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		if i := strings.IndexAny(value, "_.@"); i > 0 {
			value = value[:i]
		}
		return strings.ToLower(value)
	}
	return "en"
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
		KeyAppTitle:      "Taskbar Widget",
		KeyNoMusic:       "No Music",
		KeyShowTraffic:   "Show Network Traffic",
		KeyShowSystem:    "Show CPU/Memory",
		KeyMusicSection:  "Music Section",
		KeyMusicAlways:   "Always Show",
		KeyMusicAuto:     "Only While Playing",
		KeyVisualizer:    "Visualizer",
		KeyQuit:          "Quit",
		KeyPrevious:      "Previous",
		KeyPlayPause:     "Play/Pause",
		KeyNext:          "Next",
		KeyPresetDefault: "Default",
		KeyPresetBass:    "Bass",
		KeyPresetTreble:  "Treble",
		KeyPresetRock:    "Rock",
		KeyPresetPop:     "Pop",
		KeySettings:      "Settings",
		KeySave:          "Save",
		KeyCancel:        "Cancel",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:      "Виджет панели задач",
		KeyNoMusic:       "Нет музыки",
		KeyShowTraffic:   "Показывать сетевой трафик",
		KeyShowSystem:    "Показывать ЦП/память",
		KeyMusicSection:  "Раздел музыки",
		KeyMusicAlways:   "Показывать всегда",
		KeyMusicAuto:     "Только при воспроизведении",
		KeyVisualizer:    "Визуализатор",
		KeyQuit:          "Выход",
		KeyPrevious:      "Предыдущий",
		KeyPlayPause:     "Воспроизвести/Пауза",
		KeyNext:          "Следующий",
		KeyPresetDefault: "По умолчанию",
		KeyPresetBass:    "Басы",
		KeyPresetTreble:  "Высокие",
		KeyPresetRock:    "Рок",
		KeyPresetPop:     "Поп",
		KeySettings:      "Настройки",
		KeySave:          "Сохранить",
		KeyCancel:        "Отмена",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:      "Widget da Barra de Tarefas",
		KeyNoMusic:       "Sem Música",
		KeyShowTraffic:   "Mostrar Tráfego de Rede",
		KeyShowSystem:    "Mostrar CPU/Memória",
		KeyMusicSection:  "Seção de Música",
		KeyMusicAlways:   "Mostrar Sempre",
		KeyMusicAuto:     "Somente Durante a Reprodução",
		KeyVisualizer:    "Visualizador",
		KeyQuit:          "Sair",
		KeyPrevious:      "Anterior",
		KeyPlayPause:     "Reproduzir/Pausar",
		KeyNext:          "Próxima",
		KeyPresetDefault: "Padrão",
		KeyPresetBass:    "Graves",
		KeyPresetTreble:  "Agudos",
		KeyPresetRock:    "Rock",
		KeyPresetPop:     "Pop",
		KeySettings:      "Configurações",
		KeySave:          "Salvar",
		KeyCancel:        "Cancelar",
	}
}
