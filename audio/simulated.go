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
	"sync"
)

var errSimulatedIO = errors.New("simulated i/o failure")

// SimulatedControl describes one control of a SimulatedBackend.
type SimulatedControl struct {
	ID               ControlID
	PlaybackChannels []Channel
	CaptureChannels  []Channel

	// raw ranges, reported as-is (no widening)
	PlaybackMin int64
	PlaybackMax int64
	CaptureMin  int64
	CaptureMax  int64
}

// SimulatedBackend is an in-memory mixer. It backs the "sim" driver and is
// what the tests drive in place of hardware. Changes made through
// SetExternal model other programs touching the mixer.
type SimulatedBackend struct {
	controls []SimulatedControl
	levels   map[Key]int64
	aliases  map[ControlID]ControlID

	attached bool

	FailAttach bool
	FailReads  bool
	FailWrites bool

	Writes int

	lock sync.Mutex
}

func init() {
	RegisterBackend("sim", func() Backend {
		return NewSimulatedBackend(DefaultSimulatedControls()...)
	})
}

// DefaultSimulatedControls is a small laptop-like mixer.
func DefaultSimulatedControls() []SimulatedControl {
	stereo := []Channel{ChannelFrontLeft, ChannelFrontRight}

	return []SimulatedControl{
		{ID: ControlID{Name: "Master"}, PlaybackChannels: stereo, PlaybackMin: 0, PlaybackMax: 87},
		{ID: ControlID{Name: "Headphone"}, PlaybackChannels: stereo, PlaybackMin: 0, PlaybackMax: 87},
		{ID: ControlID{Name: "PCM"}, PlaybackChannels: stereo, PlaybackMin: 0, PlaybackMax: 255},
		{ID: ControlID{Name: "Capture"}, CaptureChannels: stereo, CaptureMin: 0, CaptureMax: 63},
		{ID: ControlID{Name: "Mic Boost"}, CaptureChannels: []Channel{ChannelMono}, CaptureMin: 0, CaptureMax: 3},
		{ID: ControlID{Name: "Beep"}, PlaybackChannels: []Channel{ChannelMono}, PlaybackMin: 0, PlaybackMax: 0},
	}
}

func NewSimulatedBackend(controls ...SimulatedControl) *SimulatedBackend {
	backend := &SimulatedBackend{
		levels:  make(map[Key]int64),
		aliases: make(map[ControlID]ControlID),
	}

	for _, control := range controls {
		backend.AddControl(control)
	}

	return backend
}

func (sim *SimulatedBackend) Attach(device string) error {
	sim.lock.Lock()
	defer sim.lock.Unlock()

	if sim.FailAttach {
		return fmt.Errorf("cannot attach simulated device %q", device)
	}

	sim.attached = true
	return nil
}

func (sim *SimulatedBackend) Close() error {
	sim.lock.Lock()
	defer sim.lock.Unlock()

	sim.attached = false
	return nil
}

func (sim *SimulatedBackend) Attached() bool {
	sim.lock.Lock()
	defer sim.lock.Unlock()

	return sim.attached
}

// AddControl appends a control with every channel at its range minimum.
func (sim *SimulatedBackend) AddControl(control SimulatedControl) {
	sim.lock.Lock()
	defer sim.lock.Unlock()

	sim.controls = append(sim.controls, control)

	for _, channel := range control.PlaybackChannels {
		sim.levels[Key{ID: control.ID, Direction: Playback, Channel: channel}] = control.PlaybackMin
	}
	for _, channel := range control.CaptureChannels {
		sim.levels[Key{ID: control.ID, Direction: Capture, Channel: channel}] = control.CaptureMin
	}
}

// RemoveControl makes a control disappear, as if the device was unplugged.
func (sim *SimulatedBackend) RemoveControl(id ControlID) {
	sim.lock.Lock()
	defer sim.lock.Unlock()

	sim.controls = slices.DeleteFunc(sim.controls, func(control SimulatedControl) bool {
		return control.ID == id
	})

	for key := range sim.levels {
		if key.ID == id {
			delete(sim.levels, key)
		}
	}
}

// SetExternal changes a level behind the application's back. The value is
// stored unclamped, as real devices sometimes report out of range values.
func (sim *SimulatedBackend) SetExternal(id ControlID, channel Channel, direction Direction, value int64) {
	sim.lock.Lock()
	defer sim.lock.Unlock()

	key := Key{ID: id, Direction: direction, Channel: channel}
	if _, ok := sim.levels[key]; ok {
		sim.levels[key] = value
	}
}

// SetAlias makes alias resolve to target, like a sound server's default
// sink. Moving an alias later does not affect controls already bound.
func (sim *SimulatedBackend) SetAlias(alias ControlID, target ControlID) {
	sim.lock.Lock()
	defer sim.lock.Unlock()

	sim.aliases[alias] = target
}

func (sim *SimulatedBackend) ResolveAlias(id ControlID) (ControlID, bool) {
	sim.lock.Lock()
	defer sim.lock.Unlock()

	target, ok := sim.aliases[id]
	return target, ok
}

func (sim *SimulatedBackend) Level(id ControlID, channel Channel, direction Direction) int64 {
	sim.lock.Lock()
	defer sim.lock.Unlock()

	return sim.levels[Key{ID: id, Direction: direction, Channel: channel}]
}

func (sim *SimulatedBackend) SimulatedControls() []SimulatedControl {
	sim.lock.Lock()
	defer sim.lock.Unlock()

	return slices.Clone(sim.controls)
}

func (sim *SimulatedBackend) Controls() ([]ControlInfo, error) {
	sim.lock.Lock()
	defer sim.lock.Unlock()

	controls := make([]ControlInfo, len(sim.controls))
	for i, control := range sim.controls {
		controls[i] = ControlInfo{
			ID:               control.ID,
			PlaybackChannels: slices.Clone(control.PlaybackChannels),
			CaptureChannels:  slices.Clone(control.CaptureChannels),
		}
	}

	return controls, nil
}

func (sim *SimulatedBackend) VolumeRange(id ControlID, direction Direction) (int64, int64, error) {
	sim.lock.Lock()
	defer sim.lock.Unlock()

	for _, control := range sim.controls {
		if control.ID != id {
			continue
		}

		if direction == Capture {
			return control.CaptureMin, control.CaptureMax, nil
		}
		return control.PlaybackMin, control.PlaybackMax, nil
	}

	return 0, 0, fmt.Errorf("%w: %s", ErrControlVanished, id)
}

func (sim *SimulatedBackend) Volume(id ControlID, channel Channel, direction Direction) (int64, error) {
	sim.lock.Lock()
	defer sim.lock.Unlock()

	value, ok := sim.levels[Key{ID: id, Direction: direction, Channel: channel}]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrControlVanished, id)
	}

	if sim.FailReads {
		return 0, errSimulatedIO
	}

	return value, nil
}

func (sim *SimulatedBackend) SetVolume(id ControlID, channel Channel, direction Direction, value int64) error {
	sim.lock.Lock()
	defer sim.lock.Unlock()

	key := Key{ID: id, Direction: direction, Channel: channel}
	if _, ok := sim.levels[key]; !ok {
		return fmt.Errorf("%w: %s", ErrControlVanished, id)
	}

	if sim.FailWrites {
		return errSimulatedIO
	}

	sim.levels[key] = value
	sim.Writes++

	return nil
}
