// Golos - кроссплатформенное приложение для голосового ввода текста
// и голосовых команд.
//
// Работает в системном трее, слушает push-to-talk клавишу: удерживайте
// Ctrl+Shift+Space и говорите, отпустите - текст появится в активном окне.
package main

import (
	"log"
	"os"

	"golos/internal/app"
	"golos/internal/hotkey"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Printf("Golos %s запускается...", Version)

	// Запускаем в главном потоке (требование для macOS и некоторых GUI)
	hotkey.RunOnMainThread(run)
}

func run() {
	application, err := app.New()
	if err != nil {
		log.Printf("Ошибка инициализации: %v", err)
		os.Exit(1)
	}

	log.Println("Приложение запущено. Удерживайте Ctrl+Shift+Space для записи.")
	application.Run()
}
