// Package audio предоставляет запись с микрофона и воспроизведение через
// PortAudio.
package audio

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gordonklaus/portaudio"

	"parrot/internal/audio/wavfile"
	"parrot/internal/engine"
)

// FramesPerBuffer - размер буфера (~23ms при 44.1kHz).
const FramesPerBuffer = 1024

// Recorder открывает потоки записи. Реализует engine.Capturer.
type Recorder struct {
	dir   string
	level atomic.Uint32 // float32 bits

	mu     sync.Mutex
	active *capture
}

// New инициализирует PortAudio. Файлы записи создаются в dir.
func New(dir string) (*Recorder, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio: %w", err)
	}
	return &Recorder{dir: dir}, nil
}

// Open начинает запись с устройства device ("" - устройство по умолчанию).
func (r *Recorder) Open(device string, format wavfile.Format) (engine.Capture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		return nil, errors.New("запись уже идёт")
	}

	dev, err := inputDevice(device)
	if err != nil {
		return nil, err
	}

	params := portaudio.LowLatencyParameters(dev, nil)
	params.Input.Channels = format.Channels
	params.SampleRate = float64(format.SampleRate)
	params.FramesPerBuffer = FramesPerBuffer

	buf := make([]int16, FramesPerBuffer*format.Channels)
	stream, err := portaudio.OpenStream(params, buf)
	if err != nil {
		return nil, fmt.Errorf("открытие %q: %w", dev.Name, err)
	}

	w, err := wavfile.Create(wavfile.NewPath(r.dir, uuid.New()), format)
	if err != nil {
		stream.Close()
		return nil, err
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		w.Abort()
		return nil, fmt.Errorf("старт записи: %w", err)
	}

	c := &capture{
		rec:    r,
		stream: stream,
		buf:    buf,
		writer: w,
		done:   make(chan struct{}),
	}
	r.active = c
	go c.loop()

	log.Printf("Запись: %s, %d Hz", dev.Name, format.SampleRate)
	return c, nil
}

// Level возвращает текущий уровень сигнала 0..1.
func (r *Recorder) Level() float32 {
	return math.Float32frombits(r.level.Load())
}

func (r *Recorder) setLevel(v float32) {
	r.level.Store(math.Float32bits(v))
}

func (r *Recorder) release(c *capture) {
	r.mu.Lock()
	if r.active == c {
		r.active = nil
	}
	r.mu.Unlock()
	r.setLevel(0)
}

// Close прерывает активную запись и освобождает PortAudio.
func (r *Recorder) Close() {
	r.mu.Lock()
	c := r.active
	r.mu.Unlock()

	if c != nil {
		c.Abort()
	}
	portaudio.Terminate()
}

type capture struct {
	rec    *Recorder
	stream *portaudio.Stream
	buf    []int16
	writer *wavfile.Writer

	stopping atomic.Bool
	done     chan struct{}
	err      error // записывается только loop
	once     sync.Once
}

func (c *capture) loop() {
	defer close(c.done)

	for !c.stopping.Load() {
		if err := c.stream.Read(); err != nil && !errors.Is(err, portaudio.InputOverflowed) {
			c.err = fmt.Errorf("чтение: %w", err)
			return
		}
		if err := c.writer.Write(c.buf); err != nil {
			c.err = err
			return
		}
		c.rec.setLevel(rms(c.buf))
	}
}

// halt останавливает поток и ждёт завершения loop.
func (c *capture) halt() {
	c.once.Do(func() {
		c.stopping.Store(true)
		<-c.done
		if err := c.stream.Stop(); err != nil {
			log.Printf("Ошибка остановки записи: %v", err)
		}
		c.stream.Close()
		c.rec.release(c)
	})
}

// Stop завершает запись и возвращает готовый файл.
func (c *capture) Stop() (wavfile.Artifact, error) {
	c.halt()
	if c.err != nil {
		c.writer.Abort()
		return wavfile.Artifact{}, c.err
	}
	return c.writer.Close()
}

// Abort завершает запись и удаляет файл.
func (c *capture) Abort() {
	c.halt()
	c.writer.Abort()
}

// rms возвращает уровень сигнала 0..1.
func rms(samples []int16) float32 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		v := float64(s) / math.MaxInt16
		sum += v * v
	}
	return float32(math.Min(math.Sqrt(sum/float64(len(samples))), 1))
}
