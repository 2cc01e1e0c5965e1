// Package tray предоставляет системный трей с меню.
package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"parrot/embedded"
	"parrot/internal/i18n"
)

// State представляет состояние приложения для отображения в трее.
type State int

const (
	StateIdle State = iota
	StateRecording
	StatePlaying
	StatePermissionMissing
)

// Callbacks содержит обработчики событий меню.
type Callbacks struct {
	OnNotificationsToggle func() bool
	OnShortcutClick       func()
	OnDelayClick          func()
	OnDeviceClick         func()
	OnPermissionsClick    func()
	OnLanguageChange      func(i18n.Language)
	OnQuit                func()
}

// Tray управляет иконкой в системном трее.
type Tray struct {
	callbacks     Callbacks
	notifications bool

	mu    sync.Mutex
	state State
	chord string

	status      *systray.MenuItem
	settings    *systray.MenuItem
	shortcutBtn *systray.MenuItem
	delayBtn    *systray.MenuItem
	deviceBtn   *systray.MenuItem
	permsBtn    *systray.MenuItem
	langMenu    *systray.MenuItem
	langItems   map[i18n.Language]*systray.MenuItem
	notifyOn    *systray.MenuItem
	quitBtn     *systray.MenuItem
}

// New создаёт новый Tray.
func New(callbacks Callbacks, notifications bool) *Tray {
	return &Tray{
		callbacks:     callbacks,
		notifications: notifications,
		langItems:     make(map[i18n.Language]*systray.MenuItem),
	}
}

// Run запускает системный трей. Блокирующая функция.
func (t *Tray) Run(onReady, onExit func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, func() {
		if onExit != nil {
			onExit()
		}
	})
}

func (t *Tray) onReady() {
	systray.SetIcon(embedded.IconIdle)
	systray.SetTooltip(i18n.T("app_tooltip"))

	// Статус
	t.status = systray.AddMenuItem(i18n.T("tray_ready"), "")
	t.status.Disable()

	systray.AddSeparator()

	// Настройки
	t.settings = systray.AddMenuItem(i18n.T("tray_settings"), "")
	t.shortcutBtn = t.settings.AddSubMenuItem(i18n.T("tray_shortcut"), i18n.T("tray_shortcut_hint"))
	t.delayBtn = t.settings.AddSubMenuItem(i18n.T("tray_delay"), i18n.T("tray_delay_hint"))
	t.deviceBtn = t.settings.AddSubMenuItem(i18n.T("tray_device"), i18n.T("tray_device_hint"))
	t.permsBtn = t.settings.AddSubMenuItem(i18n.T("tray_permissions"), i18n.T("tray_permissions_hint"))
	t.langMenu = t.settings.AddSubMenuItem(i18n.T("tray_language"), "")
	for _, lang := range i18n.AvailableLanguages() {
		item := t.langMenu.AddSubMenuItemCheckbox(i18n.LanguageName(lang), "", lang == i18n.GetLanguage())
		t.langItems[lang] = item
		go t.handleLanguage(lang, item)
	}

	// Уведомления
	t.notifyOn = systray.AddMenuItemCheckbox(i18n.T("tray_notifications"), i18n.T("tray_notifications_hint"), t.notifications)

	systray.AddSeparator()

	// Выход
	t.quitBtn = systray.AddMenuItem(i18n.T("tray_quit"), i18n.T("tray_quit_hint"))

	// Обработка событий меню
	go t.handleMenuEvents()
}

func (t *Tray) handleMenuEvents() {
	call := func(fn func()) {
		if fn != nil {
			fn()
		}
	}

	for {
		select {
		// Уведомления
		case <-t.notifyOn.ClickedCh:
			if t.callbacks.OnNotificationsToggle != nil {
				if t.callbacks.OnNotificationsToggle() {
					t.notifyOn.Check()
				} else {
					t.notifyOn.Uncheck()
				}
			}

		// Настройки
		case <-t.shortcutBtn.ClickedCh:
			call(t.callbacks.OnShortcutClick)
		case <-t.delayBtn.ClickedCh:
			call(t.callbacks.OnDelayClick)
		case <-t.deviceBtn.ClickedCh:
			call(t.callbacks.OnDeviceClick)
		case <-t.permsBtn.ClickedCh:
			call(t.callbacks.OnPermissionsClick)

		// Выход
		case <-t.quitBtn.ClickedCh:
			call(t.callbacks.OnQuit)
			systray.Quit()
			return
		}
	}
}

func (t *Tray) handleLanguage(lang i18n.Language, item *systray.MenuItem) {
	for range item.ClickedCh {
		for l, other := range t.langItems {
			if l == lang {
				other.Check()
			} else {
				other.Uncheck()
			}
		}
		if t.callbacks.OnLanguageChange != nil {
			t.callbacks.OnLanguageChange(lang)
		}
	}
}

// SetChord запоминает аккорд для строки статуса.
func (t *Tray) SetChord(chord string) {
	t.mu.Lock()
	t.chord = chord
	state := t.state
	t.mu.Unlock()
	t.SetState(state)
}

// SetState устанавливает состояние приложения и обновляет иконку.
func (t *Tray) SetState(state State) {
	t.mu.Lock()
	t.state = state
	chord := t.chord
	t.mu.Unlock()

	icon, title := embedded.IconIdle, i18n.T("tray_ready")
	switch state {
	case StateIdle:
		if chord != "" {
			title = i18n.Tf("tray_ready_chord", chord)
		}
	case StateRecording:
		icon, title = embedded.IconRecording, i18n.T("tray_recording")
	case StatePlaying:
		icon, title = embedded.IconPlaying, i18n.T("tray_playing")
	case StatePermissionMissing:
		icon, title = embedded.IconWarning, i18n.T("tray_permission_missing")
	}

	systray.SetIcon(icon)
	systray.SetTooltip(i18n.T("app_name") + " - " + title)
	if t.status != nil {
		t.status.SetTitle(title)
	}
}

// Quit закрывает системный трей.
func (t *Tray) Quit() {
	systray.Quit()
}

// RefreshUI обновляет все тексты меню на текущем языке.
func (t *Tray) RefreshUI() {
	t.mu.Lock()
	state := t.state
	t.mu.Unlock()
	t.SetState(state)

	if t.settings == nil {
		return
	}
	t.settings.SetTitle(i18n.T("tray_settings"))
	t.shortcutBtn.SetTitle(i18n.T("tray_shortcut"))
	t.shortcutBtn.SetTooltip(i18n.T("tray_shortcut_hint"))
	t.delayBtn.SetTitle(i18n.T("tray_delay"))
	t.delayBtn.SetTooltip(i18n.T("tray_delay_hint"))
	t.deviceBtn.SetTitle(i18n.T("tray_device"))
	t.deviceBtn.SetTooltip(i18n.T("tray_device_hint"))
	t.permsBtn.SetTitle(i18n.T("tray_permissions"))
	t.permsBtn.SetTooltip(i18n.T("tray_permissions_hint"))
	t.langMenu.SetTitle(i18n.T("tray_language"))
	t.notifyOn.SetTitle(i18n.T("tray_notifications"))
	t.notifyOn.SetTooltip(i18n.T("tray_notifications_hint"))
	t.quitBtn.SetTitle(i18n.T("tray_quit"))
	t.quitBtn.SetTooltip(i18n.T("tray_quit_hint"))
}
