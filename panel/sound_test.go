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
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fox-settings/audio"
)

func simulatedOpener(sim *audio.SimulatedBackend) DeviceOpener {
	return func() (*audio.Device, error) {
		return audio.OpenBackend(sim, "sim")
	}
}

func threeControls() []audio.SimulatedControl {
	return []audio.SimulatedControl{
		{ID: audio.ControlID{Name: "PCM"}, PlaybackChannels: stereo, PlaybackMax: 255},
		{ID: master, PlaybackChannels: stereo, PlaybackMax: 87, CaptureChannels: stereo, CaptureMax: 63},
		{ID: audio.ControlID{Name: "Mic Boost"}, CaptureChannels: []audio.Channel{audio.ChannelMono}, CaptureMax: 3},
	}
}

func TestActivateBuildsSlidersMasterFirst(t *testing.T) {
	assert := assert.New(t)

	sim := audio.NewSimulatedBackend(threeControls()...)
	sound := NewSoundPanel(simulatedOpener(sim), "", 0)

	require.NoError(t, sound.Activate())
	defer sound.Deactivate()

	assert.True(sound.IsActive())
	require.Equal(t, 7, sound.Len())

	expected := []audio.Key{
		{ID: master, Direction: audio.Playback, Channel: audio.ChannelFrontLeft},
		{ID: master, Direction: audio.Playback, Channel: audio.ChannelFrontRight},
		{ID: master, Direction: audio.Capture, Channel: audio.ChannelFrontLeft},
		{ID: master, Direction: audio.Capture, Channel: audio.ChannelFrontRight},
		{ID: audio.ControlID{Name: "PCM"}, Direction: audio.Playback, Channel: audio.ChannelFrontLeft},
		{ID: audio.ControlID{Name: "PCM"}, Direction: audio.Playback, Channel: audio.ChannelFrontRight},
		{ID: audio.ControlID{Name: "Mic Boost"}, Direction: audio.Capture, Channel: audio.ChannelMono},
	}

	for i, slider := range sound.Sliders() {
		assert.Equal(expected[i], slider.Descriptor().Key())
	}

	snapshot := sound.Snapshot()
	require.Len(t, snapshot, 7)
	assert.True(snapshot[3].Master)
	assert.False(snapshot[4].Master)
	assert.Equal("bound", snapshot[0].State)
}

func TestActivateWithoutMaster(t *testing.T) {
	sim := audio.NewSimulatedBackend(audio.SimulatedControl{ID: audio.ControlID{Name: "Speaker"}, PlaybackChannels: stereo, PlaybackMax: 31})
	sound := NewSoundPanel(simulatedOpener(sim), "Master", 0)

	require.NoError(t, sound.Activate())
	defer sound.Deactivate()

	assert.Equal(t, 2, sound.Len())
	assert.False(t, sound.Snapshot()[0].Master)
}

func TestActivateCustomMaster(t *testing.T) {
	sim := audio.NewSimulatedBackend(threeControls()...)
	sound := NewSoundPanel(simulatedOpener(sim), "PCM", 0)

	require.NoError(t, sound.Activate())
	defer sound.Deactivate()

	assert.Equal(t, "PCM", sound.Sliders()[0].Descriptor().ID.Name)
}

func TestActivateOpenFailure(t *testing.T) {
	assert := assert.New(t)

	sim := audio.NewSimulatedBackend(threeControls()...)
	sim.FailAttach = true

	sound := NewSoundPanel(simulatedOpener(sim), "", 0)
	err := sound.Activate()

	assert.ErrorIs(err, audio.ErrUnavailable)
	assert.Equal(0, sound.Len())
	assert.False(sound.IsActive())
	assert.ErrorIs(sound.Failure(), audio.ErrUnavailable)
}

func TestActivateOpenerErrorWrapped(t *testing.T) {
	sound := NewSoundPanel(func() (*audio.Device, error) {
		return nil, errors.New("no sound card")
	}, "", 0)

	err := sound.Activate()

	assert.ErrorIs(t, err, audio.ErrUnavailable)
	assert.Equal(t, 0, sound.Len())
}

func TestActivateUnknownBackend(t *testing.T) {
	sound := NewSoundPanel(BackendOpener("nope"), "", 0)

	assert.ErrorIs(t, sound.Activate(), audio.ErrUnavailable)
	assert.Equal(t, 0, sound.Len())
}

func TestDeactivateTwice(t *testing.T) {
	assert := assert.New(t)

	sim := audio.NewSimulatedBackend(threeControls()...)
	sound := NewSoundPanel(simulatedOpener(sim), "", 0)
	require.NoError(t, sound.Activate())

	sound.Deactivate()
	sound.Deactivate()

	assert.Equal(0, sound.Len())
	assert.False(sound.IsActive())
	assert.False(sim.Attached())

	never := NewSoundPanel(simulatedOpener(sim), "", 0)
	assert.NotPanics(never.Deactivate)
}

func TestReactivateDropsStaleBindings(t *testing.T) {
	assert := assert.New(t)

	sim := audio.NewSimulatedBackend(threeControls()...)
	sound := NewSoundPanel(simulatedOpener(sim), "", 0)
	require.NoError(t, sound.Activate())
	require.Equal(t, 7, sound.Len())

	old := sound.Sliders()

	sound.Deactivate()
	sim.RemoveControl(audio.ControlID{Name: "PCM"})
	require.NoError(t, sound.Activate())
	defer sound.Deactivate()

	assert.Equal(5, sound.Len())

	for _, slider := range old {
		assert.Equal(audio.StateInvalidated, slider.Binding().State())
	}

	for _, slider := range sound.Sliders() {
		assert.Equal(audio.StateBound, slider.Binding().State())
		assert.NotEqual("PCM", slider.Descriptor().ID.Name)
	}
}

func TestHandleEventReconcilesEverySlider(t *testing.T) {
	assert := assert.New(t)

	sim := audio.NewSimulatedBackend(threeControls()...)
	sound := NewSoundPanel(simulatedOpener(sim), "", 0)
	require.NoError(t, sound.Activate())
	defer sound.Deactivate()

	sim.SetExternal(master, audio.ChannelFrontLeft, audio.Playback, 20)
	sim.SetExternal(audio.ControlID{Name: "Mic Boost"}, audio.ChannelMono, audio.Capture, 2)

	assert.False(sound.HandleEvent(TickEvent()))

	snapshot := sound.Snapshot()
	assert.Equal(int64(20), snapshot[0].Value)
	assert.Equal(int64(2), snapshot[6].Value)
}

func TestKeyboardDrivesSelectedSlider(t *testing.T) {
	assert := assert.New(t)

	sim := audio.NewSimulatedBackend(threeControls()...)
	sound := NewSoundPanel(simulatedOpener(sim), "", 0)
	require.NoError(t, sound.Activate())
	defer sound.Deactivate()

	assert.True(sound.Sliders()[0].Focused())

	assert.True(sound.HandleEvent(key(tcell.KeyDown)))
	assert.True(sound.Sliders()[1].Focused())
	assert.False(sound.Sliders()[0].Focused())

	assert.True(sound.HandleEvent(key(tcell.KeyEnd)))
	assert.Equal(int64(87), sim.Level(master, audio.ChannelFrontRight, audio.Playback))
	assert.Equal(int64(0), sim.Level(master, audio.ChannelFrontLeft, audio.Playback))

	// selection stops at both ends
	sound.HandleEvent(key(tcell.KeyUp))
	sound.HandleEvent(key(tcell.KeyUp))
	assert.True(sound.Sliders()[0].Focused())

	for range 20 {
		sound.HandleEvent(key(tcell.KeyDown))
	}
	assert.True(sound.Sliders()[6].Focused())
}

func TestReloadKey(t *testing.T) {
	sim := audio.NewSimulatedBackend(threeControls()...)
	sound := NewSoundPanel(simulatedOpener(sim), "", 0)
	require.NoError(t, sound.Activate())
	defer sound.Deactivate()

	sim.AddControl(audio.SimulatedControl{ID: audio.ControlID{Name: "Headphone"}, PlaybackChannels: stereo, PlaybackMax: 87})

	assert.True(t, sound.HandleEvent(runeKey('r')))
	assert.Equal(t, 9, sound.Len())
}

func TestReloadKeepsLiveBindings(t *testing.T) {
	assert := assert.New(t)

	sim := audio.NewSimulatedBackend(threeControls()...)
	sound := NewSoundPanel(simulatedOpener(sim), "", 0)
	require.NoError(t, sound.Activate())
	defer sound.Deactivate()

	before := sound.Sliders()
	pcmLeft := before[4]
	require.Equal(t, "PCM", pcmLeft.Descriptor().ID.Name)

	sim.RemoveControl(audio.ControlID{Name: "PCM"})
	sound.Reload()

	require.Equal(t, 5, sound.Len())
	assert.True(sound.IsActive())
	assert.Equal(audio.StateInvalidated, pcmLeft.Binding().State())

	for i, slider := range sound.Sliders()[:4] {
		assert.Same(before[i], slider)
		assert.Equal(audio.StateBound, slider.Binding().State())
	}
	assert.Same(before[6], sound.Sliders()[4])
}

func TestReloadClosedDevice(t *testing.T) {
	sim := audio.NewSimulatedBackend(threeControls()...)
	sound := NewSoundPanel(simulatedOpener(sim), "", 0)
	require.NoError(t, sound.Activate())

	sound.device.Close()
	sound.Reload()

	assert.False(t, sound.IsActive())
	assert.Equal(t, 0, sound.Len())
	assert.ErrorIs(t, sound.Failure(), audio.ErrUnavailable)
	assert.False(t, sim.Attached())
}

func TestReloadInactivePanelActivates(t *testing.T) {
	sim := audio.NewSimulatedBackend(threeControls()...)
	sim.FailAttach = true

	sound := NewSoundPanel(simulatedOpener(sim), "", 0)
	require.Error(t, sound.Activate())

	sim.FailAttach = false
	sound.Reload()
	defer sound.Deactivate()

	assert.True(t, sound.IsActive())
	assert.Equal(t, 7, sound.Len())
	assert.NoError(t, sound.Failure())
}

func TestActivateResolvesMasterAlias(t *testing.T) {
	assert := assert.New(t)

	speakers := audio.ControlID{Name: "alsa_output.pci"}
	sim := audio.NewSimulatedBackend(
		audio.SimulatedControl{ID: audio.ControlID{Name: "alsa_output.usb"}, PlaybackChannels: stereo, PlaybackMax: 100},
		audio.SimulatedControl{ID: speakers, PlaybackChannels: stereo, PlaybackMax: 100},
	)
	sim.SetAlias(master, speakers)

	sound := NewSoundPanel(simulatedOpener(sim), "", 0)
	require.NoError(t, sound.Activate())
	defer sound.Deactivate()

	assert.Equal(speakers, sound.Sliders()[0].Descriptor().ID)
	assert.Equal(speakers, sound.Sliders()[1].Descriptor().ID)

	snapshot := sound.Snapshot()
	assert.True(snapshot[1].Master)
	assert.False(snapshot[2].Master)
}

func TestMasterMeterFollowsMaster(t *testing.T) {
	sim := audio.NewSimulatedBackend(threeControls()...)
	sound := NewSoundPanel(simulatedOpener(sim), "", 0)
	require.NoError(t, sound.Activate())
	defer sound.Deactivate()

	sim.SetExternal(master, audio.ChannelFrontLeft, audio.Playback, 87)
	sim.SetExternal(master, audio.ChannelFrontRight, audio.Playback, 87)
	sound.HandleEvent(TickEvent())

	assert.Equal(t, 100, sound.meter.GetPercent())
}

func TestPlaceholder(t *testing.T) {
	placeholder := NewPlaceholder("Bluetooth")

	assert.Equal(t, "Bluetooth", placeholder.Title())
	assert.NotNil(t, placeholder.Render())
	assert.Same(t, placeholder.Render(), placeholder.Render())
	assert.False(t, placeholder.HandleEvent(TickEvent()))
}
