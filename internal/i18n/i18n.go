// Package i18n provides internationalization support.
package i18n

import (
	"fmt"
	"sync"
)

// Language represents a UI language.
type Language string

const (
	RU Language = "ru"
	EN Language = "en"
)

var (
	mu      sync.RWMutex
	current = EN // Default language
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	RU: {
		// App
		"app_name":    "Parrot",
		"app_tooltip": "Parrot - запись и повтор по нажатию",

		// Tray menu
		"tray_ready":              "Готов к работе",
		"tray_ready_chord":        "Удерживайте %s для записи",
		"tray_recording":          "Запись...",
		"tray_playing":            "Воспроизведение...",
		"tray_permission_missing": "Нет разрешения на перехват клавиатуры",
		"tray_notifications":      "Уведомления",
		"tray_notifications_hint": "Показывать уведомления",
		"tray_settings":           "Настройки",
		"tray_shortcut":           "Сочетание клавиш...",
		"tray_shortcut_hint":      "Аккорд для записи",
		"tray_delay":              "Задержка воспроизведения...",
		"tray_delay_hint":         "Пауза между отпусканием и воспроизведением",
		"tray_device":             "Микрофон...",
		"tray_device_hint":        "Устройство записи",
		"tray_permissions":        "Разрешения...",
		"tray_permissions_hint":   "Состояние системных разрешений",
		"tray_language":           "Язык интерфейса",
		"tray_quit":               "Выход",
		"tray_quit_hint":          "Закрыть приложение",

		// Notifications
		"notify_error":              "Ошибка",
		"notify_capture_failed":     "Не удалось начать запись",
		"notify_playback_failed":    "Не удалось воспроизвести запись",
		"notify_filter_unavailable": "Сочетание клавиш не работает",
		"notify_filter_hint":        "Разрешите Parrot перехват клавиатуры в системных настройках. Приложение перезапустится само.",
		"notify_restarting":         "Разрешение получено, перезапуск...",
		"notify_ready":              "Parrot готов к работе: %s",
		"notify_saved":              "Настройки сохранены",

		// Dialogs
		"dialog_permission_title": "Нужно разрешение: %s",
		"dialog_permission_text":  "Parrot нужен доступ (%s) для работы. Разрешите его в системных настройках.",
		"dialog_open_settings":    "Открыть настройки",
		"dialog_later":            "Позже",
		"dialog_shortcut_title":   "Сочетание клавиш",
		"dialog_shortcut_mods":    "Выберите модификаторы:",
		"dialog_shortcut_key":     "Выберите клавишу:",
		"dialog_shortcut_empty":   "Нужен хотя бы один модификатор",
		"dialog_delay_title":      "Задержка воспроизведения",
		"dialog_delay_text":       "Секунды от 0 до %.0f:",
		"dialog_delay_invalid":    "Некорректное значение: %s",
		"dialog_device_title":     "Микрофон",
		"dialog_device_text":      "Выберите устройство записи:",
		"dialog_device_default":   "Системный по умолчанию",
		"dialog_permissions":      "Разрешения",
		"dialog_refresh":          "Обновить",
		"dialog_close":            "Закрыть",

		// Permissions
		"perm_microphone":   "Микрофон",
		"perm_interception": "Универсальный доступ",
		"perm_granted":      "разрешено",
		"perm_denied":       "запрещено",
		"perm_unknown":      "неизвестно",

		// Indicator
		"indicator_recording": "Запись",

		// Errors
		"error_save_config": "Не удалось сохранить настройки",
		"error_devices":     "Не удалось получить список устройств",
	},

	EN: {
		// App
		"app_name":    "Parrot",
		"app_tooltip": "Parrot - push-to-talk echo",

		// Tray menu
		"tray_ready":              "Ready",
		"tray_ready_chord":        "Hold %s to record",
		"tray_recording":          "Recording...",
		"tray_playing":            "Playing...",
		"tray_permission_missing": "Keyboard access not granted",
		"tray_notifications":      "Notifications",
		"tray_notifications_hint": "Show notifications",
		"tray_settings":           "Settings",
		"tray_shortcut":           "Shortcut...",
		"tray_shortcut_hint":      "Chord that records while held",
		"tray_delay":              "Playback delay...",
		"tray_delay_hint":         "Pause between release and playback",
		"tray_device":             "Microphone...",
		"tray_device_hint":        "Capture device",
		"tray_permissions":        "Permissions...",
		"tray_permissions_hint":   "OS permission status",
		"tray_language":           "Interface language",
		"tray_quit":               "Quit",
		"tray_quit_hint":          "Quit the application",

		// Notifications
		"notify_error":              "Error",
		"notify_capture_failed":     "Could not start recording",
		"notify_playback_failed":    "Could not play the recording",
		"notify_filter_unavailable": "Shortcut is not active",
		"notify_filter_hint":        "Allow Parrot to monitor the keyboard in System Settings. It will restart by itself.",
		"notify_restarting":         "Permission granted, restarting...",
		"notify_ready":              "Parrot is ready: %s",
		"notify_saved":              "Settings saved",

		// Dialogs
		"dialog_permission_title": "%s Permission Required",
		"dialog_permission_text":  "Parrot needs %s access to function properly. Please grant permission in System Settings.",
		"dialog_open_settings":    "Open Settings",
		"dialog_later":            "Later",
		"dialog_shortcut_title":   "Keyboard Shortcut",
		"dialog_shortcut_mods":    "Choose modifiers:",
		"dialog_shortcut_key":     "Choose a key:",
		"dialog_shortcut_empty":   "At least one modifier is required",
		"dialog_delay_title":      "Playback Delay",
		"dialog_delay_text":       "Seconds from 0 to %.0f:",
		"dialog_delay_invalid":    "Invalid value: %s",
		"dialog_device_title":     "Microphone",
		"dialog_device_text":      "Choose a capture device:",
		"dialog_device_default":   "System default",
		"dialog_permissions":      "Permissions",
		"dialog_refresh":          "Refresh",
		"dialog_close":            "Close",

		// Permissions
		"perm_microphone":   "Microphone",
		"perm_interception": "Accessibility",
		"perm_granted":      "granted",
		"perm_denied":       "denied",
		"perm_unknown":      "unknown",

		// Indicator
		"indicator_recording": "Recording",

		// Errors
		"error_save_config": "Could not save settings",
		"error_devices":     "Could not list capture devices",
	},
}

// T returns the translation for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if strings, ok := translations[current]; ok {
		if s, ok := strings[key]; ok {
			return s
		}
	}
	// Fallback to key itself
	return key
}

// Tf formats the translation for key with args.
func Tf(key string, args ...any) string {
	return fmt.Sprintf(T(key), args...)
}

// SetLanguage sets the current UI language. Unknown languages are ignored.
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := translations[lang]; ok {
		current = lang
	}
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{EN, RU}
}

// LanguageName returns display name for a language.
func LanguageName(lang Language) string {
	switch lang {
	case RU:
		return "Русский"
	case EN:
		return "English"
	default:
		return string(lang)
	}
}
