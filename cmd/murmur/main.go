// Murmur - кроссплатформенное приложение для голосовой диктовки.
//
// Работает в системном трее, слушает глобальные сочетания клавиш для
// записи и отмены. Привязки настраиваются в окне настроек.
package main

import (
	"log"
	"os"

	"murmur/internal/app"
	"murmur/internal/hook"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Printf("Murmur %s запускается...", Version)

	// Запускаем в главном потоке (требование для macOS и некоторых GUI)
	hook.RunOnMainThread(run)
}

func run() {
	application, err := app.New()
	if err != nil {
		log.Printf("Ошибка инициализации: %v", err)
		os.Exit(1)
	}

	log.Println("Приложение запущено.")
	application.Run()
}
