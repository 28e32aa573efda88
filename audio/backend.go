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
	"slices"
	"strings"
	"sync"
)

var (
	ErrUnavailable     = errors.New("audio device unavailable")
	ErrControlVanished = errors.New("mixer control vanished")
	ErrClosed          = errors.New("audio device closed")
	ErrUnknownBackend  = errors.New("unknown audio backend")
)

// Backend is the mixer library boundary. Implementations are only ever used
// through a Device, which serializes access to them.
type Backend interface {
	// Attach connects to the named device of this backend. An empty name
	// selects the backend default.
	Attach(device string) error
	Close() error

	// Controls lists the controls in the order the device reports them.
	Controls() ([]ControlInfo, error)

	VolumeRange(id ControlID, direction Direction) (int64, int64, error)
	Volume(id ControlID, channel Channel, direction Direction) (int64, error)
	SetVolume(id ControlID, channel Channel, direction Direction, value int64) error
}

// AliasResolver is implemented by backends that let a well-known control
// name stand for whichever device control is currently the default. The
// alias is resolved once, when looked up, and never rebinds afterwards.
type AliasResolver interface {
	ResolveAlias(id ControlID) (ControlID, bool)
}

type BackendFactory func() Backend

var (
	backendsLock sync.RWMutex
	backends     = make(map[string]BackendFactory)
)

// RegisterBackend makes a driver available to Open under the given name.
func RegisterBackend(driver string, factory BackendFactory) {
	backendsLock.Lock()
	defer backendsLock.Unlock()

	backends[driver] = factory
}

func Backends() []string {
	backendsLock.RLock()
	defer backendsLock.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// ParseBackendID splits a "driver/device" id. The device part may itself
// contain slashes or colons (alsa/hw:0).
func ParseBackendID(backendID string) (string, string) {
	driver, device, _ := strings.Cut(backendID, "/")

	return strings.ToLower(strings.TrimSpace(driver)), device
}

func newBackend(driver string) (Backend, error) {
	backendsLock.RLock()
	defer backendsLock.RUnlock()

	factory, ok := backends[driver]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, driver)
	}

	return factory(), nil
}
