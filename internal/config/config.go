// Package config предоставляет конфигурацию приложения с сохранением в файл.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.yaml.in/yaml/v3"

	"parrot/internal/engine"
	"parrot/internal/shortcut"
)

// ErrConfigurationInvalid возвращается при попытке сохранить некорректный аккорд.
var ErrConfigurationInvalid = errors.New("configuration invalid")

// MaxPlaybackDelay - верхняя граница задержки воспроизведения.
const MaxPlaybackDelay = 5 * time.Second

// Snapshot - неизменяемая копия настроек.
type Snapshot struct {
	PlaybackDelay time.Duration
	Shortcut      shortcut.Chord
	InputDevice   string
	Notifications bool
	UILanguage    string
}

// Defaults возвращает настройки по умолчанию.
func Defaults() Snapshot {
	return Snapshot{
		PlaybackDelay: engine.DefaultPlaybackDelay,
		Shortcut:      shortcut.Default(),
		Notifications: true,
		UILanguage:    "en",
	}
}

// shortcutData структура аккорда в файле.
type shortcutData struct {
	KeyCode   uint16 `yaml:"key_code"`
	Modifiers uint32 `yaml:"modifiers"`
}

// configData структура для сериализации.
type configData struct {
	PlaybackDelay float64      `yaml:"playback_delay"`
	Shortcut      shortcutData `yaml:"shortcut"`
	InputDevice   string       `yaml:"input_device,omitempty"`
	Notifications bool         `yaml:"notifications"`
	UILanguage    string       `yaml:"ui_language,omitempty"`
}

func toData(s Snapshot) configData {
	return configData{
		PlaybackDelay: s.PlaybackDelay.Seconds(),
		Shortcut: shortcutData{
			KeyCode:   s.Shortcut.KeyCode,
			Modifiers: uint32(s.Shortcut.Modifiers),
		},
		InputDevice:   s.InputDevice,
		Notifications: s.Notifications,
		UILanguage:    s.UILanguage,
	}
}

// fromData собирает Snapshot, подставляя значения по умолчанию для
// некорректных полей.
func fromData(d configData) Snapshot {
	s := Snapshot{
		PlaybackDelay: clampDelay(time.Duration(d.PlaybackDelay * float64(time.Second))),
		Shortcut: shortcut.Chord{
			KeyCode:   d.Shortcut.KeyCode,
			Modifiers: shortcut.Modifier(d.Shortcut.Modifiers).RelevantOnly(),
		},
		InputDevice:   d.InputDevice,
		Notifications: d.Notifications,
		UILanguage:    d.UILanguage,
	}
	if !s.Shortcut.Valid() {
		log.Printf("Аккорд без модификаторов в конфиге, используем %s", shortcut.Default())
		s.Shortcut = shortcut.Default()
	}
	return s
}

func clampDelay(d time.Duration) time.Duration {
	return min(max(d, 0), MaxPlaybackDelay)
}

// Config хранит настройки приложения.
type Config struct {
	mu      sync.RWMutex
	current Snapshot
	path    string
	lastRaw []byte // содержимое файла после последней загрузки или записи
}

// DefaultPath возвращает путь <UserConfigDir>/parrot/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "parrot", "config.yaml")
}

// New создаёт конфигурацию, загружая её из path (пустой - DefaultPath).
// Отсутствующий или повреждённый файл даёт настройки по умолчанию.
func New(path string) *Config {
	if path == "" {
		path = DefaultPath()
	}
	c := &Config{current: Defaults(), path: path}

	snap, raw, err := c.read()
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Printf("Конфиг %s не найден, используем настройки по умолчанию", path)
	case err != nil:
		log.Printf("Ошибка чтения конфига: %v", err)
	default:
		c.current = snap
		c.lastRaw = raw
	}
	return c
}

// Path возвращает путь к файлу конфигурации.
func (c *Config) Path() string {
	return c.path
}

func (c *Config) read() (Snapshot, []byte, error) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return Snapshot{}, nil, err
	}
	data := toData(Defaults())
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Snapshot{}, nil, fmt.Errorf("разбор %s: %w", c.path, err)
	}
	return fromData(data), raw, nil
}

// Snapshot возвращает текущие настройки.
func (c *Config) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// PlaybackDelay возвращает задержку перед воспроизведением.
func (c *Config) PlaybackDelay() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current.PlaybackDelay
}

// SetPlaybackDelay устанавливает задержку, ограничивая её [0, MaxPlaybackDelay].
func (c *Config) SetPlaybackDelay(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current.PlaybackDelay = clampDelay(d)
}

// Shortcut возвращает текущий аккорд.
func (c *Config) Shortcut() shortcut.Chord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current.Shortcut
}

// SetShortcut устанавливает аккорд. Аккорд без модификаторов отклоняется,
// прежний остаётся в силе.
func (c *Config) SetShortcut(chord shortcut.Chord) error {
	chord.Modifiers = chord.Modifiers.RelevantOnly()
	if !chord.Valid() {
		return fmt.Errorf("%w: shortcut %s has no modifiers", ErrConfigurationInvalid, chord)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current.Shortcut = chord
	return nil
}

// InputDevice возвращает имя устройства ввода ("" - по умолчанию).
func (c *Config) InputDevice() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current.InputDevice
}

// SetInputDevice устанавливает устройство ввода.
func (c *Config) SetInputDevice(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current.InputDevice = name
}

// NotificationsEnabled возвращает true если уведомления включены.
func (c *Config) NotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current.Notifications
}

// ToggleNotifications переключает состояние уведомлений.
func (c *Config) ToggleNotifications() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current.Notifications = !c.current.Notifications
	return c.current.Notifications
}

// UILanguage возвращает язык интерфейса.
func (c *Config) UILanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current.UILanguage
}

// SetUILanguage устанавливает язык интерфейса.
func (c *Config) SetUILanguage(lang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current.UILanguage = lang
}

// Save атомарно записывает настройки в файл.
func (c *Config) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := yaml.Marshal(toData(c.current))
	if err != nil {
		return fmt.Errorf("save config: marshal: %w", err)
	}
	if err := atomicWrite(c.path, raw); err != nil {
		return err
	}
	c.lastRaw = raw
	log.Printf("Конфиг сохранён: %s", c.path)
	return nil
}

// reload перечитывает файл. changed == false, если содержимое не менялось
// с последней загрузки или записи.
func (c *Config) reload() (snap Snapshot, changed bool, err error) {
	snap, raw, err := c.read()
	if err != nil {
		return Snapshot{}, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if bytes.Equal(raw, c.lastRaw) {
		return c.current, false, nil
	}
	c.current = snap
	c.lastRaw = raw
	return snap, true, nil
}

// atomicWrite пишет во временный файл и переименовывает его.
func atomicWrite(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("save config: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("save config: create temp: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("save config: write: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("save config: sync: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("save config: close: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("save config: rename: %w", err)
	}
	return nil
}
