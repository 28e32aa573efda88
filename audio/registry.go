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
	"fmt"
	"log/slog"
)

// Enumerate lists one descriptor per adjustable channel of every control on
// the device, in device order. For each control the playback channels come
// before the capture channels. Directions whose range cannot be read are
// skipped.
func Enumerate(device *Device) ([]ControlDescriptor, error) {
	controls, err := device.controls()
	if err != nil {
		return nil, fmt.Errorf("enumerating controls on %s: %w", device.ID(), err)
	}

	descriptors := make([]ControlDescriptor, 0, len(controls)*4)

	for _, control := range controls {
		descriptors = append(descriptors, describe(device, control)...)
	}

	return descriptors, nil
}

// FindByIdentity looks up a single well-known control and returns its first
// descriptor (playback before capture, left before right). A name the
// device does not report is tried once more as a backend alias; the
// descriptor then carries the real control identity.
func FindByIdentity(device *Device, name string, index int) (ControlDescriptor, bool) {
	controls, err := device.controls()
	if err != nil {
		return ControlDescriptor{}, false
	}

	id := ControlID{Name: name, Index: index}

	if desc, ok := findControl(device, controls, id); ok {
		return desc, true
	}

	resolved, ok := device.resolveAlias(id)
	if !ok || resolved == id {
		return ControlDescriptor{}, false
	}

	slog.Debug(fmt.Sprintf("Control %s resolved to %s", id, resolved))

	return findControl(device, controls, resolved)
}

func findControl(device *Device, controls []ControlInfo, id ControlID) (ControlDescriptor, bool) {
	for _, control := range controls {
		if control.ID != id {
			continue
		}

		descriptors := describe(device, control)
		if len(descriptors) == 0 {
			return ControlDescriptor{}, false
		}

		return descriptors[0], true
	}

	return ControlDescriptor{}, false
}

func describe(device *Device, control ControlInfo) []ControlDescriptor {
	descriptors := make([]ControlDescriptor, 0, 4)

	for _, direction := range []Direction{Playback, Capture} {
		channels := control.Channels(direction)
		if len(channels) == 0 {
			continue
		}

		min, max, err := device.volumeRange(control.ID, direction)
		if err != nil {
			slog.Debug(fmt.Sprintf("Skipping %s %s: %s", control.ID, direction, err.Error()))
			continue
		}

		min, max = NormalizeRange(min, max)

		for _, channel := range channels {
			descriptors = append(descriptors, ControlDescriptor{
				ID:        control.ID,
				Channel:   channel,
				Direction: direction,
				Min:       min,
				Max:       max,
			})
		}
	}

	return descriptors
}

// Registry owns the bindings created against one device.
type Registry struct {
	device   *Device
	bindings map[Key]*Binding
}

func NewRegistry(device *Device) *Registry {
	return &Registry{
		device:   device,
		bindings: make(map[Key]*Binding),
	}
}

func (registry *Registry) Enumerate() ([]ControlDescriptor, error) {
	return Enumerate(registry.device)
}

func (registry *Registry) FindByIdentity(name string, index int) (ControlDescriptor, bool) {
	return FindByIdentity(registry.device, name, index)
}

// Bind returns the binding for the descriptor, creating and binding it on
// first use. A control channel is never bound twice.
func (registry *Registry) Bind(desc ControlDescriptor) *Binding {
	key := desc.Key()

	if binding, ok := registry.bindings[key]; ok && binding.State() != StateInvalidated {
		return binding
	}

	binding := newBinding(registry.device, desc)
	binding.bind()
	registry.bindings[key] = binding

	return binding
}

func (registry *Registry) Len() int {
	return len(registry.bindings)
}

// Refresh re-enumerates the device and invalidates every binding whose
// control channel is no longer reported.
func (registry *Registry) Refresh() ([]ControlDescriptor, error) {
	descriptors, err := registry.Enumerate()
	if err != nil {
		return nil, err
	}

	present := make(map[Key]bool, len(descriptors))
	for _, desc := range descriptors {
		present[desc.Key()] = true
	}

	for key, binding := range registry.bindings {
		if !present[key] {
			slog.Info(fmt.Sprintf("Control %s %s %s vanished", key.ID, key.Direction, key.Channel))
			binding.Invalidate()
			delete(registry.bindings, key)
		}
	}

	return descriptors, nil
}

// Close invalidates and forgets every binding. The device itself belongs to
// the caller.
func (registry *Registry) Close() {
	for key, binding := range registry.bindings {
		binding.Invalidate()
		delete(registry.bindings, key)
	}
}
