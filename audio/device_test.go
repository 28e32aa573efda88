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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenUnknownBackend(t *testing.T) {
	device, err := Open("nope/0")

	assert.Nil(t, device)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestOpenAttachFailure(t *testing.T) {
	sim := NewSimulatedBackend(DefaultSimulatedControls()...)
	sim.FailAttach = true

	device, err := OpenBackend(sim, "sim")

	assert.Nil(t, device)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, sim.Attached())
}

func TestOpenRegisteredSimulator(t *testing.T) {
	device, err := Open("sim")
	require.NoError(t, err)
	defer device.Close()

	assert.True(t, device.IsOpen())
	assert.Equal(t, "sim", device.ID())
}

func TestDeviceCloseIdempotent(t *testing.T) {
	assert := assert.New(t)

	sim := NewSimulatedBackend(DefaultSimulatedControls()...)
	device, err := OpenBackend(sim, "sim")
	require.NoError(t, err)

	device.Close()
	device.Close()

	assert.False(device.IsOpen())
	assert.False(sim.Attached())

	var never *Device
	assert.NotPanics(func() { never.Close() })
	assert.False(never.IsOpen())

	_, err = device.controls()
	assert.ErrorIs(err, ErrClosed)

	_, err = device.volume(ControlID{Name: "Master"}, ChannelFrontLeft, Playback)
	assert.ErrorIs(err, ErrClosed)
}
