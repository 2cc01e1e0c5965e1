package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce склеивает серию событий от одного сохранения в редакторе.
const watchDebounce = 200 * time.Millisecond

// Watch следит за файлом конфигурации и вызывает fn с новыми настройками
// после внешнего изменения. Блокируется до отмены ctx.
//
// Наблюдаем за директорией, а не за файлом: редакторы и Save заменяют файл
// через rename, и наблюдение за самим файлом теряется.
func (c *Config) Watch(ctx context.Context, fn func(Snapshot)) error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("watch config: mkdir: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch config: add %s: %w", dir, err)
	}

	target := filepath.Clean(c.path)
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("Ошибка наблюдения за конфигом: %v", err)
		case <-fire:
			fire = nil
			snap, changed, err := c.reload()
			if err != nil {
				log.Printf("Конфиг не перечитан: %v", err)
				continue
			}
			if !changed {
				continue
			}
			log.Printf("Конфиг перечитан: %s", c.path)
			fn(snap)
		}
	}
}
