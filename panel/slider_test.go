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
package panel

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fox-settings/audio"
)

var (
	stereo = []audio.Channel{audio.ChannelFrontLeft, audio.ChannelFrontRight}
	master = audio.ControlID{Name: "Master"}
)

func simulatedSliders(t *testing.T, controls ...audio.SimulatedControl) (*audio.SimulatedBackend, []*SyncedSlider) {
	t.Helper()

	sim := audio.NewSimulatedBackend(controls...)
	device, err := audio.OpenBackend(sim, "sim")
	require.NoError(t, err)
	t.Cleanup(device.Close)

	registry := audio.NewRegistry(device)
	descriptors, err := registry.Enumerate()
	require.NoError(t, err)

	sliders := make([]*SyncedSlider, len(descriptors))
	for i, desc := range descriptors {
		sliders[i] = NewSyncedSlider(registry.Bind(desc), channelLabel(desc.Channel))
	}

	return sim, sliders
}

func setTo(value int64) func(*int64) bool {
	return func(displayed *int64) bool {
		*displayed = value
		return true
	}
}

func idle(*int64) bool {
	return false
}

func TestSliderStartsAtHardwareLevel(t *testing.T) {
	sim := audio.NewSimulatedBackend(audio.SimulatedControl{ID: master, PlaybackChannels: stereo, PlaybackMax: 87})
	sim.SetExternal(master, audio.ChannelFrontLeft, audio.Playback, 64)

	device, err := audio.OpenBackend(sim, "sim")
	require.NoError(t, err)
	defer device.Close()

	registry := audio.NewRegistry(device)
	desc, ok := registry.FindByIdentity("Master", 0)
	require.True(t, ok)

	slider := NewSyncedSlider(registry.Bind(desc), "Left :")

	assert.Equal(t, int64(64), slider.Displayed())
	assert.Equal(t, int64(1), slider.Step())
}

func TestUserChangeWins(t *testing.T) {
	assert := assert.New(t)

	sim, sliders := simulatedSliders(t, audio.SimulatedControl{ID: master, PlaybackChannels: stereo, PlaybackMax: 87})
	left := sliders[0]

	// the hardware moved too, but the user touched the slider in this tick
	sim.SetExternal(master, audio.ChannelFrontLeft, audio.Playback, 10)

	handled := left.Reconcile(setTo(40))

	assert.True(handled)
	assert.Equal(int64(40), left.Displayed())
	assert.Equal(int64(40), left.Binding().Current())
	assert.Equal(int64(40), sim.Level(master, audio.ChannelFrontLeft, audio.Playback))
}

func TestUserChangeClamped(t *testing.T) {
	sim, sliders := simulatedSliders(t, audio.SimulatedControl{ID: master, PlaybackChannels: stereo, PlaybackMax: 87})
	left := sliders[0]

	left.Reconcile(setTo(500))

	assert.Equal(t, int64(87), left.Displayed())
	assert.Equal(t, int64(87), left.Binding().Current())
	assert.Equal(t, int64(87), sim.Level(master, audio.ChannelFrontLeft, audio.Playback))
}

func TestIdleTickPullsHardware(t *testing.T) {
	assert := assert.New(t)

	sim, sliders := simulatedSliders(t, audio.SimulatedControl{ID: master, PlaybackChannels: stereo, PlaybackMax: 87})
	right := sliders[1]

	sim.SetExternal(master, audio.ChannelFrontRight, audio.Playback, 55)
	assert.False(right.HandleEvent(TickEvent()))
	assert.Equal(int64(55), right.Displayed())

	sim.SetExternal(master, audio.ChannelFrontRight, audio.Playback, 120)
	right.HandleEvent(TickEvent())
	assert.Equal(int64(87), right.Displayed())

	assert.Equal(0, sim.Writes)
}

func TestDegenerateRangeSlider(t *testing.T) {
	sim, sliders := simulatedSliders(t, audio.SimulatedControl{
		ID:               audio.ControlID{Name: "Beep"},
		PlaybackChannels: []audio.Channel{audio.ChannelMono},
	})
	require.Len(t, sliders, 1)

	beep := sliders[0]
	assert.Equal(t, int64(0), beep.Descriptor().Min)
	assert.Equal(t, int64(1), beep.Descriptor().Max)

	beep.Reconcile(setTo(5))

	assert.Equal(t, int64(1), beep.Displayed())
	assert.Equal(t, int64(1), sim.Level(audio.ControlID{Name: "Beep"}, audio.ChannelMono, audio.Playback))
}

func TestStereoWritesIndependent(t *testing.T) {
	sim, sliders := simulatedSliders(t, audio.SimulatedControl{ID: master, PlaybackChannels: stereo, PlaybackMax: 87})

	sliders[0].Reconcile(setTo(12))
	sliders[1].Reconcile(setTo(70))

	assert.Equal(t, int64(12), sim.Level(master, audio.ChannelFrontLeft, audio.Playback))
	assert.Equal(t, int64(70), sim.Level(master, audio.ChannelFrontRight, audio.Playback))
	assert.Equal(t, int64(12), sliders[0].Displayed())
	assert.Equal(t, int64(70), sliders[1].Displayed())
}

func TestOnlyFocusedSliderTakesKeys(t *testing.T) {
	assert := assert.New(t)

	sim, sliders := simulatedSliders(t, audio.SimulatedControl{ID: master, PlaybackChannels: stereo, PlaybackMax: 87})
	left, right := sliders[0], sliders[1]
	right.SetFocused(true)

	ev := InputEvent(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone))

	assert.False(left.HandleEvent(ev))
	assert.True(right.HandleEvent(ev))

	assert.Equal(int64(0), sim.Level(master, audio.ChannelFrontLeft, audio.Playback))
	assert.Equal(int64(87), sim.Level(master, audio.ChannelFrontRight, audio.Playback))
}

func TestVanishedControlFreezesSlider(t *testing.T) {
	assert := assert.New(t)

	sim, sliders := simulatedSliders(t, audio.SimulatedControl{ID: master, PlaybackChannels: stereo, PlaybackMax: 87})
	left := sliders[0]
	left.Reconcile(setTo(30))

	sim.RemoveControl(master)

	left.Reconcile(idle)
	assert.Equal(audio.StateInvalidated, left.Binding().State())
	assert.Equal(int64(30), left.Displayed())

	left.Reconcile(setTo(80))
	assert.Equal(int64(30), left.Displayed())
}

func TestCustomEditor(t *testing.T) {
	sim, sliders := simulatedSliders(t, audio.SimulatedControl{ID: master, PlaybackChannels: stereo, PlaybackMax: 87})
	left := sliders[0]
	left.SetFocused(true)
	left.SetEditor(editorFunc(func(ev Event, value *int64) bool {
		*value = 21
		return true
	}))

	left.HandleEvent(TickEvent())

	assert.Equal(t, int64(21), sim.Level(master, audio.ChannelFrontLeft, audio.Playback))
}

type editorFunc func(ev Event, value *int64) bool

func (f editorFunc) Apply(ev Event, value *int64) bool {
	return f(ev, value)
}

func TestSliderWidgetFollowsValue(t *testing.T) {
	_, sliders := simulatedSliders(t, audio.SimulatedControl{ID: master, PlaybackChannels: stereo, PlaybackMax: 87})
	left := sliders[0]

	assert.NotNil(t, left.Widget().GetGrid())
	assert.Same(t, left.Widget(), left.Widget())

	left.Reconcile(setTo(44))
	assert.Equal(t, int64(44), left.Displayed())
}
