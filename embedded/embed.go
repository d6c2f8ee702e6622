// Package embedded содержит встроенные ресурсы приложения.
package embedded

import (
	_ "embed"
)

// IconIdle - иконка в состоянии ожидания (серая).
//
//go:embed icon_idle.png
var IconIdle []byte

// IconRecording - иконка во время записи (красная).
//
//go:embed icon_recording.png
var IconRecording []byte

// IconTranscribing - иконка во время распознавания (оранжевая).
//
//go:embed icon_transcribing.png
var IconTranscribing []byte

// IconProcessing - иконка во время обработки текста (жёлтая).
//
//go:embed icon_processing.png
var IconProcessing []byte

// IconInjecting - иконка во время вставки текста (зелёная).
//
//go:embed icon_injecting.png
var IconInjecting []byte

// IconError - иконка ошибки (тёмно-красная).
//
//go:embed icon_error.png
var IconError []byte
