// Package dialog предоставляет GUI диалоги для настройки приложения.
package dialog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ncruces/zenity"

	"parrot/internal/config"
	"parrot/internal/i18n"
	"parrot/internal/shortcut"
)

// ErrCanceled возвращается, если пользователь закрыл диалог.
var ErrCanceled = zenity.ErrCanceled

// PermissionAlert спрашивает, открыть ли системные настройки для разрешения
// name. Возвращает true, если пользователь выбрал "Открыть настройки".
func PermissionAlert(name string) bool {
	err := zenity.Question(
		i18n.Tf("dialog_permission_text", strings.ToLower(name)),
		zenity.Title(i18n.Tf("dialog_permission_title", name)),
		zenity.WarningIcon,
		zenity.OKLabel(i18n.T("dialog_open_settings")),
		zenity.CancelLabel(i18n.T("dialog_later")),
	)
	return err == nil
}

// SelectShortcut открывает диалог выбора аккорда. Отмена на любом шаге
// возвращает ErrCanceled, аккорд без модификаторов -
// config.ErrConfigurationInvalid.
func SelectShortcut(current shortcut.Chord) (shortcut.Chord, error) {
	// Шаг 1: Выбор модификаторов
	options := make([]string, 0, 4)
	for _, m := range shortcut.All() {
		options = append(options, m.String()+" "+m.Name())
	}
	var selected []string
	for _, m := range shortcut.All() {
		if current.Modifiers.Has(m) {
			selected = append(selected, m.String()+" "+m.Name())
		}
	}

	mods, err := zenity.ListMultiple(
		i18n.T("dialog_shortcut_mods"),
		options,
		zenity.Title(i18n.T("dialog_shortcut_title")),
		zenity.DefaultItems(selected...),
	)
	if err != nil {
		return current, err
	}
	if len(mods) == 0 {
		return current, fmt.Errorf("%w: %s", config.ErrConfigurationInvalid, i18n.T("dialog_shortcut_empty"))
	}

	// Шаг 2: Выбор клавиши
	key, err := zenity.List(
		i18n.T("dialog_shortcut_key"),
		shortcut.AvailableKeys(),
		zenity.Title(i18n.T("dialog_shortcut_title")),
		zenity.DefaultItems(shortcut.KeyName(current.KeyCode)),
	)
	if err != nil {
		return current, err
	}

	return parseChord(mods, key)
}

// parseChord собирает аккорд из выбранных строк вида "⌘ Command".
func parseChord(mods []string, key string) (shortcut.Chord, error) {
	var chord shortcut.Chord
	for _, s := range mods {
		for _, m := range shortcut.All() {
			if strings.HasSuffix(s, m.Name()) {
				chord.Modifiers |= m
			}
		}
	}
	if !chord.Valid() {
		return chord, fmt.Errorf("%w: %s", config.ErrConfigurationInvalid, i18n.T("dialog_shortcut_empty"))
	}

	code, ok := shortcut.KeyCode(key)
	if !ok {
		return chord, fmt.Errorf("%w: unknown key %q", config.ErrConfigurationInvalid, key)
	}
	chord.KeyCode = code
	return chord, nil
}

// SelectPlaybackDelay спрашивает задержку воспроизведения в секундах.
func SelectPlaybackDelay(current time.Duration) (time.Duration, error) {
	text, err := zenity.Entry(
		i18n.Tf("dialog_delay_text", config.MaxPlaybackDelay.Seconds()),
		zenity.Title(i18n.T("dialog_delay_title")),
		zenity.EntryText(strconv.FormatFloat(current.Seconds(), 'f', 1, 64)),
	)
	if err != nil {
		return current, err
	}
	return parseDelay(text)
}

func parseDelay(text string) (time.Duration, error) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || v < 0 || v > config.MaxPlaybackDelay.Seconds() {
		return 0, errors.New(i18n.Tf("dialog_delay_invalid", text))
	}
	return time.Duration(v * float64(time.Second)), nil
}

// SelectInputDevice предлагает выбрать устройство записи. Пустая строка -
// устройство по умолчанию.
func SelectInputDevice(devices []string, current string) (string, error) {
	def := i18n.T("dialog_device_default")
	items := append([]string{def}, devices...)
	selected := current
	if selected == "" {
		selected = def
	}

	choice, err := zenity.List(
		i18n.T("dialog_device_text"),
		items,
		zenity.Title(i18n.T("dialog_device_title")),
		zenity.DefaultItems(selected),
	)
	if err != nil {
		return current, err
	}
	if choice == def {
		return "", nil
	}
	return choice, nil
}

// PermissionRow - строка панели разрешений.
type PermissionRow struct {
	Name   string
	Status string
}

// ShowPermissions показывает состояние разрешений. Возвращает индекс строки,
// для которой нужно открыть системные настройки.
func ShowPermissions(rows []PermissionRow) (int, error) {
	items := make([]string, len(rows))
	for i, r := range rows {
		items[i] = r.Name + ": " + r.Status
	}
	choice, err := zenity.List(
		i18n.T("dialog_permissions"),
		items,
		zenity.Title(i18n.T("dialog_permissions")),
		zenity.OKLabel(i18n.T("dialog_open_settings")),
		zenity.CancelLabel(i18n.T("dialog_close")),
	)
	if err != nil {
		return -1, err
	}
	for i, item := range items {
		if item == choice {
			return i, nil
		}
	}
	return -1, ErrCanceled
}

// ShowError показывает сообщение об ошибке.
func ShowError(title, message string) {
	zenity.Error(message, zenity.Title(title))
}
