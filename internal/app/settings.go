package app

import (
	"context"
	"errors"
	"log"

	"parrot/internal/audio"
	"parrot/internal/config"
	"parrot/internal/dialog"
	"parrot/internal/i18n"
	"parrot/internal/permission"
	"parrot/internal/shortcut"
)

func (a *App) save() {
	if err := a.config.Save(); err != nil {
		log.Printf("Ошибка сохранения настроек: %v", err)
		a.notifier.Error(i18n.T("error_save_config"))
		return
	}
	a.notifier.Info(i18n.T("notify_saved"))
}

func (a *App) toggleNotifications() bool {
	enabled := a.config.ToggleNotifications()
	a.notifier.SetEnabled(enabled)
	a.save()
	return enabled
}

func (a *App) changeShortcut() {
	prev := a.config.Shortcut()
	chord, err := dialog.SelectShortcut(prev)
	switch {
	case errors.Is(err, dialog.ErrCanceled):
		return
	case errors.Is(err, config.ErrConfigurationInvalid):
		dialog.ShowError(i18n.T("dialog_shortcut_title"), i18n.T("dialog_shortcut_empty"))
		return
	case err != nil:
		log.Printf("Ошибка выбора аккорда: %v", err)
		return
	}

	if err := a.config.SetShortcut(chord); err != nil {
		dialog.ShowError(i18n.T("dialog_shortcut_title"), i18n.T("dialog_shortcut_empty"))
		return
	}
	if err := a.applyChord(a.config.Shortcut()); err != nil {
		_ = a.config.SetShortcut(prev)
		a.notifier.Error(err.Error())
		return
	}
	a.save()
}

// applyChord перепривязывает перехватчик и только затем публикует аккорд
// фильтру, чтобы отпускание старого аккорда ещё совпало.
func (a *App) applyChord(chord shortcut.Chord) error {
	if chord == a.filter.Chord() {
		return nil
	}
	if err := a.tap.Rebind(chord); err != nil {
		log.Printf("Ошибка перепривязки %s: %v", chord, err)
		return err
	}
	a.filter.SetChord(chord)
	a.tray.SetChord(chord.String())
	log.Printf("Аккорд: %s", chord)
	return nil
}

func (a *App) changeDelay() {
	d, err := dialog.SelectPlaybackDelay(a.config.PlaybackDelay())
	if err != nil {
		if !errors.Is(err, dialog.ErrCanceled) {
			log.Printf("Ошибка выбора задержки: %v", err)
			dialog.ShowError(i18n.T("dialog_delay_title"), i18n.T("dialog_delay_invalid"))
		}
		return
	}
	a.config.SetPlaybackDelay(d)
	a.save()
}

func (a *App) changeDevice() {
	devices, err := audio.InputDevices()
	if err != nil {
		log.Printf("Ошибка получения устройств: %v", err)
		a.notifier.Error(i18n.T("error_devices"))
		return
	}
	names := make([]string, len(devices))
	for i, d := range devices {
		names[i] = d.Name
	}

	name, err := dialog.SelectInputDevice(names, a.config.InputDevice())
	if err != nil {
		if !errors.Is(err, dialog.ErrCanceled) {
			log.Printf("Ошибка выбора устройства: %v", err)
		}
		return
	}
	a.config.SetInputDevice(name)
	a.save()
}

// showPermissions показывает панель разрешений, пока пользователь её не
// закроет. Выбор строки открывает системные настройки.
func (a *App) showPermissions() {
	for {
		a.monitor.Refresh()
		caps := permission.Capabilities()
		rows := make([]dialog.PermissionRow, len(caps))
		for i, c := range caps {
			rows[i] = dialog.PermissionRow{
				Name:   capabilityName(c),
				Status: statusName(a.monitor.Status(c)),
			}
		}

		idx, err := dialog.ShowPermissions(rows)
		if err != nil || idx < 0 || idx >= len(caps) {
			return
		}
		a.openSettings(caps[idx])
	}
}

func (a *App) changeLanguage(lang i18n.Language) {
	i18n.SetLanguage(lang)
	a.config.SetUILanguage(string(lang))
	a.tray.RefreshUI()
	a.save()
}

// watchConfig применяет изменения файла настроек, сделанные вне приложения.
// Задержка и устройство читаются движком из конфига при каждом использовании.
func (a *App) watchConfig(ctx context.Context) {
	err := a.config.Watch(ctx, func(s config.Snapshot) {
		log.Printf("Настройки перечитаны из %s", a.config.Path())
		if err := a.applyChord(s.Shortcut); err != nil {
			a.notifier.Error(err.Error())
		}
		a.notifier.SetEnabled(s.Notifications)
		if i18n.Language(s.UILanguage) != i18n.GetLanguage() {
			i18n.SetLanguage(i18n.Language(s.UILanguage))
			a.tray.RefreshUI()
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Отслеживание настроек: %v", err)
	}
}
