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
package app

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fox-settings/audio"
	"fox-settings/display"
	"fox-settings/model"
	"fox-settings/panel"
)

func openDefaultSimulation(t *testing.T) (*audio.SimulatedBackend, *audio.Device) {
	t.Helper()

	sim := audio.NewSimulatedBackend(audio.DefaultSimulatedControls()...)
	device, err := audio.OpenBackend(sim, "sim")
	require.NoError(t, err)
	t.Cleanup(device.Close)

	return sim, device
}

func TestListControlsText(t *testing.T) {
	assert := assert.New(t)

	_, device := openDefaultSimulation(t)

	var out bytes.Buffer
	require.NoError(t, listControls(&out, device, model.OutputTUI))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")

	// header plus Master 2, Headphone 2, PCM 2, Capture 2, Mic Boost 1, Beep 1
	require.Len(t, lines, 11)
	assert.True(strings.HasPrefix(lines[0], "CONTROL"))
	assert.Contains(lines[1], "Master")
	assert.Contains(lines[1], "playback")
	assert.Contains(lines[1], "left")

	// degenerate Beep range is reported widened
	assert.Regexp(`^Beep\s+playback\s+mono\s+0\s+1$`, lines[10])
}

func TestListControlsJson(t *testing.T) {
	_, device := openDefaultSimulation(t)

	var out bytes.Buffer
	require.NoError(t, listControls(&out, device, model.OutputJSON))

	var descriptions []model.ControlDescription
	require.NoError(t, json.Unmarshal(out.Bytes(), &descriptions))

	require.Len(t, descriptions, 10)
	assert.Equal(t, model.ControlDescription{
		Name: "Capture", Direction: "capture", Channel: "right", Min: 0, Max: 63,
	}, descriptions[7])
}

func TestListControlsClosedDevice(t *testing.T) {
	_, device := openDefaultSimulation(t)
	device.Close()

	var out bytes.Buffer
	assert.ErrorIs(t, listControls(&out, device, model.OutputTUI), audio.ErrClosed)
}

func TestBuildPanels(t *testing.T) {
	sound := panel.NewSoundPanel(panel.BackendOpener("sim"), "", 0)

	panels := buildPanels(sound, nil)
	require.Len(t, panels, len(panel.DefaultPlaceholders)+1)
	assert.Equal(t, "Sound", panels[0].Title())
	assert.Equal(t, "Wi-Fi", panels[1].Title())
	assert.Equal(t, "About", panels[len(panels)-1].Title())

	panels = buildPanels(sound, []string{"Network"})
	require.Len(t, panels, 2)
	assert.Equal(t, "Network", panels[1].Title())
}

func TestSimulationStaysInRange(t *testing.T) {
	sim, _ := openDefaultSimulation(t)

	randomizeLevels(sim)
	for range 200 {
		driftLevels(sim)
	}

	forEachSimulatedChannel(sim, func(key audio.Key, min int64, max int64) {
		level := sim.Level(key.ID, key.Channel, key.Direction)
		assert.GreaterOrEqual(t, level, min, key.ID.String())
		assert.LessOrEqual(t, level, max, key.ID.String())
	})
}

func TestNewUI(t *testing.T) {
	assert.IsType(t, &display.JsonUI{}, newUI(&model.Config{OutputType: model.OutputJSON, TickIntervalMs: 50}))
	assert.IsType(t, &display.Tui{}, newUI(&model.Config{OutputType: model.OutputTUI, TickIntervalMs: 50}))
}
