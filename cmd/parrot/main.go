// Parrot - push-to-talk эхо для проверки микрофона.
//
// Работает в системном трее. Пока зажат аккорд (по умолчанию ⇧⌘Z), идёт
// запись; после отпускания запись воспроизводится и удаляется.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"parrot/internal/app"
	"parrot/internal/hotkey"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "путь к файлу настроек (по умолчанию в каталоге настроек пользователя)")
	showVersion := flag.Bool("version", false, "показать версию и выйти")
	flag.Parse()

	if *showVersion {
		fmt.Println("parrot", Version)
		return
	}

	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Printf("Parrot %s запускается...", Version)

	// Запускаем в главном потоке (требование для macOS и некоторых GUI)
	hotkey.RunOnMainThread(func() {
		run(app.Options{ConfigPath: *configPath, Args: os.Args[1:]})
	})
}

func run(opts app.Options) {
	application, err := app.New(opts)
	if err != nil {
		log.Printf("Ошибка инициализации: %v", err)
		os.Exit(1)
	}

	log.Println("Приложение запущено")
	application.Run()
}
