// =================================================================================
//
//			fox-settings - https://www.foxhollow.cc/projects/fox-settings/
//
//		 Fox Settings is a simple terminal utility for managing system settings,
//	  starting with the mixer controls of the local audio devices
//
//		 Copyright (c) 2024 Steve Cross <flip@foxhollow.cc>
//
//			Licensed under the Apache License, Version 2.0 (the "License");
//			you may not use this file except in compliance with the License.
//			You may obtain a copy of the License at
//
//			     http://www.apache.org/licenses/LICENSE-2.0
//
//			Unless required by applicable law or agreed to in writing, software
//			distributed under the License is distributed on an "AS IS" BASIS,
//			WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//			See the License for the specific language governing permissions and
//			limitations under the License.
//
// =================================================================================
package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Device is the open connection to one mixer. All hardware access goes
// through it so that Close can never race an in-flight read or write.
type Device struct {
	id      string
	backend Backend
	open    bool

	lock sync.Mutex
}

// Open attaches to the backend named by backendID ("pulse", "alsa/hw:0").
// Any failure is reported as ErrUnavailable.
func Open(backendID string) (*Device, error) {
	driver, device := ParseBackendID(backendID)

	backend, err := newBackend(driver)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, backendID, err)
	}

	return openDevice(backendID, backend, device)
}

// OpenBackend attaches an already constructed backend.
func OpenBackend(backend Backend, device string) (*Device, error) {
	return openDevice(device, backend, device)
}

func openDevice(id string, backend Backend, device string) (*Device, error) {
	slog.Info("Opening mixer device " + id)

	if err := backend.Attach(device); err != nil {
		// some backends hold resources from a partial attach
		backend.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, id, err)
	}

	slog.Debug("Mixer device " + id + " attached")

	return &Device{
		id:      id,
		backend: backend,
		open:    true,
	}, nil
}

func (device *Device) ID() string {
	if device == nil {
		return ""
	}

	return device.id
}

func (device *Device) IsOpen() bool {
	if device == nil {
		return false
	}

	device.lock.Lock()
	defer device.lock.Unlock()

	return device.open
}

// Close releases the backend. It may be called any number of times, on a
// nil device, or concurrently with other device calls.
func (device *Device) Close() {
	if device == nil {
		return
	}

	device.lock.Lock()
	defer device.lock.Unlock()

	if !device.open {
		return
	}

	device.open = false

	if err := device.backend.Close(); err != nil {
		slog.Warn(fmt.Sprintf("Error closing mixer device %s: %s", device.id, err.Error()))
		return
	}

	slog.Info("Mixer device " + device.id + " closed")
}

func (device *Device) controls() ([]ControlInfo, error) {
	device.lock.Lock()
	defer device.lock.Unlock()

	if !device.open {
		return nil, ErrClosed
	}

	return device.backend.Controls()
}

func (device *Device) volumeRange(id ControlID, direction Direction) (int64, int64, error) {
	device.lock.Lock()
	defer device.lock.Unlock()

	if !device.open {
		return 0, 0, ErrClosed
	}

	return device.backend.VolumeRange(id, direction)
}

func (device *Device) volume(id ControlID, channel Channel, direction Direction) (int64, error) {
	device.lock.Lock()
	defer device.lock.Unlock()

	if !device.open {
		return 0, ErrClosed
	}

	return device.backend.Volume(id, channel, direction)
}

func (device *Device) setVolume(id ControlID, channel Channel, direction Direction, value int64) error {
	device.lock.Lock()
	defer device.lock.Unlock()

	if !device.open {
		return ErrClosed
	}

	return device.backend.SetVolume(id, channel, direction, value)
}

func (device *Device) resolveAlias(id ControlID) (ControlID, bool) {
	device.lock.Lock()
	defer device.lock.Unlock()

	resolver, ok := device.backend.(AliasResolver)
	if !device.open || !ok {
		return ControlID{}, false
	}

	return resolver.ResolveAlias(id)
}

func isGone(err error) bool {
	return errors.Is(err, ErrControlVanished) || errors.Is(err, ErrClosed)
}
