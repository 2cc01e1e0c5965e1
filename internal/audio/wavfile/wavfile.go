// Package wavfile stores one recording as a temporary WAV file: the artifact
// that lives from the end of capture until playback has finished.
package wavfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/uuid"
)

const (
	// Prefix начинает имя каждого временного файла записи.
	Prefix = "recording_"
	// Ext расширение артефакта.
	Ext = ".wav"
)

// Format описывает формат захвата.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// DefaultFormat - mono, 44.1kHz, 16 бит.
var DefaultFormat = Format{SampleRate: 44100, Channels: 1, BitDepth: 16}

// Artifact is a finalized recording on disk.
type Artifact struct {
	Path     string
	Duration time.Duration
}

// Exists reports whether the artifact file is still on disk.
func (a Artifact) Exists() bool {
	if a.Path == "" {
		return false
	}
	_, err := os.Stat(a.Path)
	return err == nil
}

// Remove deletes the artifact. Removing a missing artifact is not an error.
func (a Artifact) Remove() error {
	if a.Path == "" {
		return nil
	}
	if err := os.Remove(a.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("удаление %s: %w", a.Path, err)
	}
	return nil
}

// NewPath returns a fresh artifact path in dir.
func NewPath(dir string, id uuid.UUID) string {
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, Prefix+id.String()+Ext)
}

// Writer streams PCM samples into a WAV file.
type Writer struct {
	file    *os.File
	enc     *wav.Encoder
	format  Format
	buf     *audio.IntBuffer
	samples int
}

// Create opens path for writing.
func Create(path string, format Format) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("создание директории: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("создание wav: %w", err)
	}
	return &Writer{
		file:   file,
		enc:    wav.NewEncoder(file, format.SampleRate, format.BitDepth, format.Channels, 1),
		format: format,
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: format.Channels, SampleRate: format.SampleRate},
			SourceBitDepth: format.BitDepth,
		},
	}, nil
}

// Write appends interleaved 16-bit samples.
func (w *Writer) Write(samples []int16) error {
	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]
	for i, v := range samples {
		w.buf.Data[i] = int(v)
	}
	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("запись wav: %w", err)
	}
	w.samples += len(samples)
	return nil
}

// Close finalizes the header and returns the artifact.
func (w *Writer) Close() (Artifact, error) {
	path := w.file.Name()
	if err := w.enc.Close(); err != nil {
		_ = w.file.Close()
		return Artifact{}, fmt.Errorf("закрытие wav: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return Artifact{}, fmt.Errorf("закрытие файла: %w", err)
	}
	return Artifact{Path: path, Duration: w.Duration()}, nil
}

// Abort closes and deletes the file without finalizing it.
func (w *Writer) Abort() {
	_ = w.enc.Close()
	_ = w.file.Close()
	_ = os.Remove(w.file.Name())
}

// Duration returns the length of audio written so far.
func (w *Writer) Duration() time.Duration {
	frames := w.samples / max(w.format.Channels, 1)
	return time.Duration(frames) * time.Second / time.Duration(max(w.format.SampleRate, 1))
}

// Clip is a decoded artifact ready for playback.
type Clip struct {
	Format   Format
	Samples  []int16
	Duration time.Duration
}

// Load decodes the artifact at path.
func Load(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("открытие wav: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s: некорректный wav", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("декодирование wav: %w", err)
	}

	format := Format{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
	}
	samples := make([]int16, len(buf.Data))
	shift := format.BitDepth - 16
	for i, v := range buf.Data {
		switch {
		case shift > 0:
			v >>= shift
		case shift < 0:
			v <<= -shift
		}
		samples[i] = int16(v)
	}

	frames := len(samples) / max(format.Channels, 1)
	return &Clip{
		Format:   format,
		Samples:  samples,
		Duration: time.Duration(frames) * time.Second / time.Duration(max(format.SampleRate, 1)),
	}, nil
}

// Sweep removes artifacts left in dir by a previous run.
func Sweep(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, Prefix) || !strings.HasSuffix(name, Ext) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err == nil {
			removed++
		}
	}
	return removed, nil
}
