// Package app связывает фильтр, движок, разрешения и интерфейс.
package app

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"

	"parrot/internal/audio"
	"parrot/internal/audio/wavfile"
	"parrot/internal/config"
	"parrot/internal/dialog"
	"parrot/internal/engine"
	"parrot/internal/filter"
	"parrot/internal/hotkey"
	"parrot/internal/i18n"
	"parrot/internal/indicator"
	"parrot/internal/notify"
	"parrot/internal/permission"
	"parrot/internal/tray"
	"parrot/internal/workerutil"
)

// Options задаёт параметры запуска.
type Options struct {
	// ConfigPath - путь к файлу настроек, пустой - config.DefaultPath().
	ConfigPath string
	// Args передаются новому экземпляру при перезапуске.
	Args []string
}

// App представляет главное приложение.
type App struct {
	config    *config.Config
	recorder  *audio.Recorder
	player    *audio.Player
	notifier  *notify.Notifier
	tray      *tray.Tray
	indicator *indicator.Window
	presenter *presenter
	monitor   *permission.Monitor
	filter    *filter.Filter
	tap       hotkey.Tap
	engine    *engine.Engine
	gate      *permission.Gate

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once

	alertMu  sync.Mutex
	alerting map[permission.Capability]bool
}

// New создаёт новое приложение.
func New(opts Options) (*App, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg := config.New(path)

	// Инициализируем язык интерфейса из конфига
	if uiLang := cfg.UILanguage(); uiLang != "" {
		i18n.SetLanguage(i18n.Language(uiLang))
	}

	// Удаляем записи, оставшиеся после аварийного завершения
	dir := filepath.Join(os.TempDir(), "parrot")
	if n, err := wavfile.Sweep(dir); err != nil {
		log.Printf("Ошибка очистки временных файлов: %v", err)
	} else if n > 0 {
		log.Printf("Удалено старых записей: %d", n)
	}

	recorder, err := audio.New(dir)
	if err != nil {
		return nil, err
	}
	player, err := audio.NewPlayer()
	if err != nil {
		recorder.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		config:    cfg,
		recorder:  recorder,
		player:    player,
		notifier:  notify.New(cfg.NotificationsEnabled()),
		indicator: indicator.New(recorder, indicator.DefaultConfig()),
		monitor:   permission.NewMonitor(nil),
		filter:    filter.New(cfg.Shortcut()),
		tap:       hotkey.NewTap(cfg.Shortcut()),
		ctx:       ctx,
		cancel:    cancel,
		alerting:  make(map[permission.Capability]bool),
	}

	a.tray = tray.New(tray.Callbacks{
		OnNotificationsToggle: a.toggleNotifications,
		OnShortcutClick:       a.changeShortcut,
		OnDelayClick:          a.changeDelay,
		OnDeviceClick:         a.changeDevice,
		OnPermissionsClick:    a.showPermissions,
		OnLanguageChange:      a.changeLanguage,
		OnQuit: func() {
			log.Printf("Выход по команде из меню")
		},
	}, cfg.NotificationsEnabled())
	a.presenter = newPresenter(a.tray, a.indicator)

	a.engine = engine.New(a.filter.Signals(), engine.Options{
		Capturer:      recorder,
		Player:        player,
		Sink:          a,
		Device:        cfg.InputDevice,
		PlaybackDelay: cfg.PlaybackDelay,
		Microphone:    a.monitor.Microphone,
	})

	a.gate = permission.NewGate(permission.GateOptions{
		Check:   a.checkInterception,
		Tap:     a.tap,
		Handler: a.filter,
		Relauncher: &permission.ProcessRelauncher{
			Args: opts.Args,
			Quit: a.tray.Quit,
		},
		OnState:       a.onGateState,
		OnUnavailable: a.onFilterUnavailable,
	})

	a.monitor.OnChange(func(c permission.Capability, s permission.Status) {
		log.Printf("Разрешение %s: %s", c, s)
		if c == permission.Microphone && s == permission.Denied {
			go a.permissionAlert(c)
		}
	})

	return a, nil
}

// Run запускает приложение. Блокирует до выхода из трея.
func (a *App) Run() {
	a.tray.Run(a.start, a.Close)
}

func (a *App) start() {
	a.tray.SetChord(a.filter.Chord().String())
	a.tray.SetState(tray.StateIdle)

	opts := workerutil.Options{
		OnFatal: func(worker string, _ int) {
			a.notifier.Error(worker)
		},
	}
	workerutil.Run(a.ctx, "presenter", &a.wg, a.presenter.run, opts)
	workerutil.Run(a.ctx, "engine", &a.wg, a.engine.Run, opts)
	workerutil.Run(a.ctx, "permission-gate", &a.wg, a.runGate, opts)
	workerutil.Run(a.ctx, "config-watch", &a.wg, a.watchConfig, opts)

	a.monitor.Refresh()
	if a.monitor.Status(permission.Microphone) != permission.Granted {
		a.monitor.RequestMicrophone()
	}
}

// Close останавливает фоновые задачи и освобождает устройства. Безопасно
// вызывать повторно.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		log.Printf("Завершение работы")
		a.cancel()
		a.wg.Wait()

		if err := a.tap.Uninstall(); err != nil {
			log.Printf("Ошибка снятия перехвата: %v", err)
		}
		a.indicator.Hide()
		a.player.Close()
		a.recorder.Close()
	})
}

// StateChanged реализует engine.Sink.
func (a *App) StateChanged(s engine.State) {
	log.Printf("Состояние: %s", s)
	a.presenter.push(s)
}

// CaptureFailed реализует engine.Sink.
func (a *App) CaptureFailed(err error) {
	a.notifier.CaptureFailed(err)
	if errors.Is(err, permission.ErrMicrophoneDenied) {
		go a.permissionAlert(permission.Microphone)
	}
}

// PlaybackFailed реализует engine.Sink.
func (a *App) PlaybackFailed(err error) {
	a.notifier.PlaybackFailed(err)
}

func (a *App) runGate(ctx context.Context) {
	err := a.gate.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Перехват клавиатуры: %v", err)
	}
}

// checkInterception опрашивает систему и обновляет кэш монитора.
func (a *App) checkInterception() permission.Status {
	s := permission.Check(permission.InputInterception)
	a.monitor.Set(permission.InputInterception, s)
	return s
}

func (a *App) onGateState(s permission.GateState) {
	log.Printf("Перехват клавиатуры: %s", s)
	switch s {
	case permission.Installed:
		a.presenter.setBlocked(false)
		a.notifier.Ready(a.filter.Chord().String())
	case permission.Polling:
		// Системный запрос показывается только один раз за запуск
		permission.PromptInterception()
		go a.permissionAlert(permission.InputInterception)
	case permission.AwaitingRestart:
		a.notifier.Restarting()
	}
}

func (a *App) onFilterUnavailable(err error) {
	a.presenter.setBlocked(true)
	a.notifier.FilterUnavailable()
}

// permissionAlert предлагает открыть системные настройки. Одновременно
// показывается не больше одного окна на разрешение.
func (a *App) permissionAlert(c permission.Capability) {
	a.alertMu.Lock()
	if a.alerting[c] {
		a.alertMu.Unlock()
		return
	}
	a.alerting[c] = true
	a.alertMu.Unlock()

	defer func() {
		a.alertMu.Lock()
		delete(a.alerting, c)
		a.alertMu.Unlock()
	}()

	if dialog.PermissionAlert(capabilityName(c)) {
		a.openSettings(c)
	}
}

func (a *App) openSettings(c permission.Capability) {
	if err := permission.OpenSettings(c); err != nil {
		log.Printf("Не удалось открыть настройки %s: %v", c, err)
		a.notifier.Error(err.Error())
	}
}

func capabilityName(c permission.Capability) string {
	if c == permission.Microphone {
		return i18n.T("perm_microphone")
	}
	return i18n.T("perm_interception")
}

func statusName(s permission.Status) string {
	switch s {
	case permission.Granted:
		return i18n.T("perm_granted")
	case permission.Denied:
		return i18n.T("perm_denied")
	default:
		return i18n.T("perm_unknown")
	}
}
