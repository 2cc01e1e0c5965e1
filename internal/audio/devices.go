package audio

import (
	"errors"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// ErrDeviceNotFound возвращается, если выбранного устройства нет в системе.
var ErrDeviceNotFound = errors.New("устройство не найдено")

// Device описывает устройство ввода.
type Device struct {
	Name    string
	Default bool
}

// InputDevices возвращает список устройств ввода.
func InputDevices() ([]Device, error) {
	all, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("список устройств: %w", err)
	}
	var def string
	if d, err := portaudio.DefaultInputDevice(); err == nil {
		def = d.Name
	}

	out := make([]Device, 0, len(all))
	for _, d := range all {
		if d.MaxInputChannels == 0 {
			continue
		}
		out = append(out, Device{Name: d.Name, Default: d.Name == def})
	}
	return out, nil
}

func inputDevice(name string) (*portaudio.DeviceInfo, error) {
	if name == "" {
		d, err := portaudio.DefaultInputDevice()
		if err != nil {
			return nil, fmt.Errorf("устройство по умолчанию: %w", err)
		}
		return d, nil
	}
	all, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("список устройств: %w", err)
	}
	return pickInput(all, name)
}

// pickInput ищет устройство ввода по имени.
func pickInput(all []*portaudio.DeviceInfo, name string) (*portaudio.DeviceInfo, error) {
	for _, d := range all {
		if d.Name == name && d.MaxInputChannels > 0 {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrDeviceNotFound, name)
}
