// Package notify предоставляет системные уведомления.
package notify

import (
	"log"
	"sync/atomic"

	"github.com/gen2brain/beeep"

	"parrot/internal/i18n"
)

const appName = "Parrot"

// Notifier отправляет системные уведомления.
type Notifier struct {
	enabled atomic.Bool
	send    func(title, message string) error
}

// New создаёт новый Notifier.
func New(enabled bool) *Notifier {
	n := &Notifier{
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
	n.enabled.Store(enabled)
	return n
}

// SetEnabled включает/выключает уведомления.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled.Store(enabled)
}

// CaptureFailed сообщает об ошибке записи. Не блокирует: вызывается из
// горутины движка, а beeep на macOS запускает внешний процесс.
func (n *Notifier) CaptureFailed(err error) {
	go n.notify(i18n.T("notify_capture_failed"), err.Error())
}

// PlaybackFailed сообщает об ошибке воспроизведения. Не блокирует.
func (n *Notifier) PlaybackFailed(err error) {
	go n.notify(i18n.T("notify_playback_failed"), err.Error())
}

// FilterUnavailable сообщает, что перехват клавиатуры не установлен.
func (n *Notifier) FilterUnavailable() {
	n.notify(i18n.T("notify_filter_unavailable"), i18n.T("notify_filter_hint"))
}

// Restarting сообщает о перезапуске после получения разрешения.
func (n *Notifier) Restarting() {
	n.notify("", i18n.T("notify_restarting"))
}

// Ready сообщает, что аккорд активен.
func (n *Notifier) Ready(chord string) {
	n.notify("", i18n.Tf("notify_ready", chord))
}

// Error показывает уведомление об ошибке.
func (n *Notifier) Error(msg string) {
	n.notify(i18n.T("notify_error"), msg)
}

// Info показывает информационное уведомление.
func (n *Notifier) Info(msg string) {
	if r := []rune(msg); len(r) > 100 {
		msg = string(r[:100]) + "..."
	}
	n.notify("", msg)
}

func (n *Notifier) notify(title, message string) {
	if !n.enabled.Load() {
		return
	}
	if title != "" {
		title = appName + ": " + title
	} else {
		title = appName
	}
	// Ошибки уведомлений не критичны
	if err := n.send(title, message); err != nil {
		log.Printf("Уведомление не отправлено: %v", err)
	}
}
