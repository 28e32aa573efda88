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

	"fox-settings/util"
)

type BindingState int8

const (
	StateUninitialized BindingState = iota
	StateBound
	StateInvalidated
)

func (s BindingState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateBound:
		return "bound"
	case StateInvalidated:
		return "invalidated"
	}
	return "unknown"
}

// Binding is the live link between one control channel and its in-memory
// value. current always lies inside the descriptor range.
type Binding struct {
	device     *Device
	descriptor ControlDescriptor
	state      BindingState

	current int64

	// last value known to be on the hardware, either read or written
	hardware int64
}

func newBinding(device *Device, desc ControlDescriptor) *Binding {
	return &Binding{
		device:     device,
		descriptor: desc,
		state:      StateUninitialized,
		current:    desc.Min,
		hardware:   desc.Min,
	}
}

func (binding *Binding) bind() {
	if binding.state != StateUninitialized {
		return
	}

	binding.state = StateBound
	binding.Read()
}

func (binding *Binding) Descriptor() ControlDescriptor {
	return binding.descriptor
}

func (binding *Binding) State() BindingState {
	return binding.state
}

func (binding *Binding) Current() int64 {
	return binding.current
}

// Read pulls the hardware value. Transient failures leave current as it
// was; a vanished control invalidates the binding.
func (binding *Binding) Read() int64 {
	if binding.state != StateBound {
		return binding.current
	}

	desc := binding.descriptor

	value, err := binding.device.volume(desc.ID, desc.Channel, desc.Direction)
	if err != nil {
		binding.handleError("read", err)
		return binding.current
	}

	binding.hardware = value
	binding.current = desc.Clamp(value)

	return binding.current
}

// Write pushes a value to the hardware. The value is clamped first and the
// hardware is only touched when it differs from what the hardware last had.
func (binding *Binding) Write(value int64) {
	if binding.state != StateBound {
		return
	}

	desc := binding.descriptor
	clamped := desc.Clamp(value)

	if clamped != binding.hardware {
		err := binding.device.setVolume(desc.ID, desc.Channel, desc.Direction, clamped)
		if err != nil {
			binding.handleError("write", err)
			if binding.state == StateInvalidated {
				return
			}
		} else {
			binding.hardware = clamped
		}
	}

	binding.current = clamped
}

func (binding *Binding) Invalidate() {
	if binding.state == StateInvalidated {
		return
	}

	binding.state = StateInvalidated
	slog.Debug("Binding invalidated: " + binding.descriptor.String())
}

func (binding *Binding) handleError(op string, err error) {
	if isGone(err) {
		slog.Warn(fmt.Sprintf("Control %s is gone, freezing at %d", binding.descriptor.ID, binding.current))
		binding.Invalidate()
		return
	}

	util.TraceLog(fmt.Sprintf("Transient %s failure on %s: %s", op, binding.descriptor, err.Error()))
}
