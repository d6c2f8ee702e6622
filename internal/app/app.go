// Package app собирает приложение из компонентов и управляет его жизненным циклом.
package app

import (
	"context"
	"log"

	"golos/internal/audio"
	"golos/internal/command"
	"golos/internal/config"
	"golos/internal/dialog"
	"golos/internal/dictation"
	"golos/internal/history"
	"golos/internal/hotkey"
	"golos/internal/i18n"
	"golos/internal/input"
	"golos/internal/llm"
	"golos/internal/models"
	"golos/internal/notify"
	"golos/internal/processing"
	"golos/internal/speech"
	"golos/internal/tray"
)

// App представляет главное приложение.
type App struct {
	config       *config.Config
	ring         *audio.RingBuffer
	recorder     *audio.Recorder
	modelManager *models.Manager
	speechHandle *speech.Handle
	textHandle   *llm.Handle
	controller   *dictation.Controller
	notifier     *notify.Notifier
	tray         *tray.Tray
	hotkey       *hotkey.Handler
}

// New создаёт новое приложение.
func New() (*App, error) {
	cfg := config.New()

	// Инициализируем язык интерфейса из конфига
	if uiLang := cfg.UILanguage(); uiLang != "" {
		i18n.SetLanguage(i18n.Language(uiLang))
	}

	ring := audio.NewRingBuffer(0)
	recorder, err := audio.New(ring)
	if err != nil {
		return nil, err
	}

	typer, err := input.New()
	if err != nil {
		recorder.Close()
		return nil, err
	}

	presser, err := input.NewPresser()
	if err != nil {
		recorder.Close()
		return nil, err
	}

	modelManager, err := models.NewManager()
	if err != nil {
		recorder.Close()
		return nil, err
	}

	notifier := notify.New(cfg.NotificationsEnabled(), cfg.SoundsEnabled())

	app := &App{
		config:       cfg,
		ring:         ring,
		recorder:     recorder,
		modelManager: modelManager,
		notifier:     notifier,
	}

	// Речевой движок: whisper или vosk в зависимости от модели
	app.speechHandle = speech.NewHandle(speech.NewFactory(modelManager))

	// Текстовый движок: llama.cpp в процессе или внешний ollama
	app.textHandle = llm.NewHandle(app.textEngineFactory)

	router := processing.NewRouter(app.textHandle, processing.NewDefaultTemplates())

	// Исполнитель голосовых команд с платформенными коллабораторами
	launcher, windows, system := command.NewSystemCollaborators()
	executor := command.NewExecutor(launcher, windows, system, presser)
	executor.SetEnabledFunc(cfg.CommandEnabled)

	// Системный трей с обработчиками
	app.tray = tray.New(tray.Callbacks{
		OnModeSelect: func(kind processing.ModeKind) {
			cfg.SetMode(processing.Mode{Kind: kind})
			if kind != processing.ModeRaw {
				go app.ensureTextEngine()
			}
		},
		OnLanguageSelect: cfg.SetLanguage,
		OnUILanguageSelect: func(lang i18n.Language) {
			cfg.SetUILanguage(string(lang))
			i18n.SetLanguage(lang)
			app.tray.RefreshUI()
		},
		OnCommandsToggle: func() bool {
			enabled := !cfg.Commands().Enabled
			cfg.SetCommandsEnabled(enabled)
			return enabled
		},
		OnNotificationsToggle: func() bool {
			enabled := cfg.ToggleNotifications()
			notifier.SetEnabled(enabled)
			return enabled
		},
		OnSoundsToggle: func() bool {
			enabled := cfg.ToggleSounds()
			notifier.SetSounds(enabled)
			return enabled
		},
		OnSettingsClick: app.editHotkey,
		OnQuit:          app.Close,
	})

	app.controller = dictation.NewController(dictation.Deps{
		Source:    recorder,
		Buffer:    ring,
		Speech:    app.speechHandle,
		Router:    router,
		Executor:  executor,
		Injector:  &notifyingInjector{inner: typer, onInject: notifier.Success},
		Announcer: multiAnnouncer{app.tray, &notifyAnnouncer{notifier}},
		Sound:     notifier,
		History:   history.New(),
		Settings:  cfg.Snapshot,
	})

	// Hotkey: нажатие начинает запись, отпускание запускает цикл.
	// Остаток цикла (транскрипция, обработка, вставка) не должен
	// блокировать поток событий клавиатуры.
	app.hotkey = hotkey.New(
		app.controller.HotkeyDown,
		func() { go app.controller.HotkeyUp() },
	)

	cfg.OnHotkeyChange(func(hk config.HotkeyConfig) {
		if err := app.hotkey.Register(hk); err != nil {
			log.Printf("Ошибка регистрации горячей клавиши: %v", err)
			notifier.Error(i18n.T("error_hotkey_register"))
		}
	})

	return app, nil
}

// Run запускает приложение.
func (a *App) Run() {
	a.tray.Run(func() {
		a.tray.SetMode(a.config.Mode().Kind)
		a.tray.SetLanguage(a.config.Language())
		a.tray.SetUILanguage(i18n.GetLanguage())
		a.tray.SetCommandsEnabled(a.config.Commands().Enabled)

		// Регистрируем горячую клавишу после инициализации трея
		if err := a.hotkey.Register(a.config.Hotkey()); err != nil {
			log.Printf("Ошибка регистрации горячей клавиши: %v", err)
		}

		// Ленивая загрузка движков в фоне
		go a.loadRecognizer()
	})
}

func (a *App) loadRecognizer() {
	modelID := a.config.ModelID()
	if modelID == "" {
		modelID = models.DefaultModelID()
	}

	info, ok := models.GetModel(modelID)
	if !ok {
		modelID = models.DefaultModelID()
		info, _ = models.GetModel(modelID)
	}

	if !a.ensureDownloaded(info) {
		return
	}

	if err := a.speechHandle.Load(modelID); err != nil {
		log.Printf("Ошибка загрузки модели: %v", err)
		a.notifier.Error(i18n.T("error_model_load"))
		return
	}

	a.config.SetModelID(modelID)

	// Текстовый движок нужен только не-Raw режимам
	if a.config.TextEngineEnabled() && a.config.Mode().Kind != processing.ModeRaw {
		a.ensureTextEngine()
	}

	a.notifier.Info(i18n.T("notify_ready"))
}

// SwapModel меняет модель распознавания на лету.
func (a *App) SwapModel(modelID string) {
	info, ok := models.GetModel(modelID)
	if !ok {
		return
	}
	if !a.ensureDownloaded(info) {
		return
	}

	if err := a.speechHandle.Swap(modelID); err != nil {
		log.Printf("Ошибка смены модели: %v", err)
		a.notifier.Error(i18n.T("error_model_load"))
		return
	}
	a.config.SetModelID(modelID)
	a.notifier.Info(i18n.T("success_model_loaded"))
}

// ensureTextEngine загружает текстовый движок если он ещё не загружен.
func (a *App) ensureTextEngine() {
	if !a.config.TextEngineEnabled() || a.textHandle.IsLoaded() {
		return
	}

	te := a.config.TextEngine()
	modelID := te.ModelID
	if modelID == "" {
		modelID = models.DefaultLLMModelID()
	}

	if te.Backend != "ollama" {
		info, ok := models.GetModel(modelID)
		if !ok || !a.ensureDownloaded(info) {
			return
		}
	}

	if err := a.textHandle.Load(modelID); err != nil {
		log.Printf("Ошибка загрузки текстового движка: %v", err)
		a.notifier.Error(i18n.T("error_llm_load"))
	}
}

// textEngineFactory создаёт Generator по текущим настройкам.
func (a *App) textEngineFactory(modelID string) (llm.Generator, error) {
	te := a.config.TextEngine()

	if te.Backend == "ollama" {
		client := llm.NewOllama(llm.OllamaConfig{
			URL:   te.OllamaURL,
			Model: te.OllamaModel,
		})
		ctx, cancel := context.WithTimeout(context.Background(), llm.DefaultOllamaTimeout)
		defer cancel()
		if err := client.Ping(ctx); err != nil {
			return nil, err
		}
		return client, nil
	}

	info, ok := models.GetModel(modelID)
	if !ok {
		return nil, llm.ErrUnknownModel
	}
	return llm.NewLlamaModel(a.modelManager.GetModelPath(info), 2048)
}

// ensureDownloaded скачивает модель с подтверждением пользователя.
func (a *App) ensureDownloaded(info models.ModelInfo) bool {
	if a.modelManager.IsDownloaded(info) {
		return true
	}

	if !dialog.ConfirmDownload(info) {
		a.notifier.Info(i18n.T("error_model_not_downloaded"))
		return false
	}

	progress := make(chan models.Progress, 16)
	go func() {
		for range progress {
		}
	}()

	err := a.modelManager.Download(context.Background(), info, progress)
	close(progress)
	if err != nil {
		log.Printf("Ошибка скачивания модели %s: %v", info.ID, err)
		a.notifier.Error(i18n.T("error_model_load"))
		return false
	}
	return true
}

// editHotkey открывает диалог настройки горячей клавиши.
func (a *App) editHotkey() {
	hk, err := dialog.SelectHotkey(a.config.Hotkey())
	if err != nil {
		return // Пользователь отменил
	}
	a.config.SetHotkey(hk)
}

// Close освобождает ресурсы приложения.
func (a *App) Close() {
	if a.hotkey != nil {
		a.hotkey.Unregister()
	}

	if a.recorder != nil {
		a.recorder.Close()
	}

	if a.speechHandle != nil {
		a.speechHandle.Close()
	}

	if a.textHandle != nil {
		a.textHandle.Close()
	}

	if a.tray != nil {
		a.tray.Quit()
	}
}

// notifyingInjector вставляет текст и сообщает об удачной вставке.
// Ошибка вставки до уведомления не доходит: о ней сообщает автомат.
type notifyingInjector struct {
	inner    dictation.Injector
	onInject func(text string)
}

func (i *notifyingInjector) Type(text string) error {
	if err := i.inner.Type(text); err != nil {
		return err
	}
	if i.onInject != nil {
		i.onInject(text)
	}
	return nil
}

// multiAnnouncer рассылает переходы состояния всем наблюдателям.
type multiAnnouncer []dictation.Announcer

func (m multiAnnouncer) StateChanged(from, to dictation.State, reason string) {
	for _, a := range m {
		a.StateChanged(from, to, reason)
	}
}

// notifyAnnouncer транслирует переходы автомата в уведомления.
type notifyAnnouncer struct {
	notifier *notify.Notifier
}

func (n *notifyAnnouncer) StateChanged(from, to dictation.State, reason string) {
	switch {
	case to == dictation.StateRecording:
		n.notifier.Recording()
	case to == dictation.StateTranscribing:
		n.notifier.Processing()
	case reason == dictation.ReasonEmptyTranscript:
		n.notifier.Empty()
	case reason == dictation.ReasonCommandExecuted && to == dictation.StateIdle:
		n.notifier.CommandDone()
	case reason == dictation.ReasonCommandPartial:
		n.notifier.CommandPartial(i18n.T("error_command"))
	case to == dictation.StateError:
		n.notifier.Error(i18n.T("notify_error"))
	}
}
