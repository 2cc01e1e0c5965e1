package audio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"

	"parrot/internal/audio/wavfile"
	"parrot/internal/engine"
)

// Player воспроизводит записи через устройство вывода по умолчанию.
// Реализует engine.Player.
type Player struct{}

// NewPlayer инициализирует PortAudio для вывода.
func NewPlayer() (*Player, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio: %w", err)
	}
	return &Player{}, nil
}

// Close освобождает PortAudio.
func (p *Player) Close() {
	portaudio.Terminate()
}

// Play декодирует файл и начинает воспроизведение.
func (p *Player) Play(ctx context.Context, a wavfile.Artifact) (engine.Playback, error) {
	clip, err := wavfile.Load(a.Path)
	if err != nil {
		return nil, err
	}

	out := make([]int16, FramesPerBuffer*clip.Format.Channels)
	stream, err := portaudio.OpenDefaultStream(0, clip.Format.Channels, float64(clip.Format.SampleRate), FramesPerBuffer, out)
	if err != nil {
		return nil, fmt.Errorf("открытие вывода: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("старт вывода: %w", err)
	}

	pb := &playback{
		duration: clip.Duration,
		done:     make(chan error, 1),
		stop:     make(chan struct{}),
	}
	go pb.loop(ctx, stream, out, clip.Samples)
	return pb, nil
}

type playback struct {
	duration time.Duration
	done     chan error
	stop     chan struct{}
	once     sync.Once
}

func (pb *playback) Duration() time.Duration { return pb.duration }
func (pb *playback) Done() <-chan error      { return pb.done }

func (pb *playback) Stop() {
	pb.once.Do(func() { close(pb.stop) })
}

func (pb *playback) loop(ctx context.Context, stream *portaudio.Stream, out, samples []int16) {
	var err error
	defer func() {
		if stopErr := stream.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
		stream.Close()
		pb.done <- err
	}()

	for pos := 0; pos < len(samples); {
		select {
		case <-ctx.Done():
			return
		case <-pb.stop:
			return
		default:
		}
		pos = fill(out, samples, pos)
		if werr := stream.Write(); werr != nil && !errors.Is(werr, portaudio.OutputUnderflowed) {
			err = fmt.Errorf("вывод: %w", werr)
			log.Printf("Ошибка воспроизведения: %v", err)
			return
		}
	}
}

// fill копирует следующий блок в out, дополняя тишиной, и возвращает новую
// позицию.
func fill(out, samples []int16, pos int) int {
	n := copy(out, samples[pos:])
	clear(out[n:])
	return pos + n
}
