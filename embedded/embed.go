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

// IconPlaying - иконка во время воспроизведения (зелёная).
//
//go:embed icon_playing.png
var IconPlaying []byte

// IconWarning - иконка при отсутствии разрешений (оранжевая).
//
//go:embed icon_warning.png
var IconWarning []byte
