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
	"fmt"
	"math/rand/v2"

	"fox-settings/audio"
	"fox-settings/model"
	"fox-settings/util"
)

// startSimulation moves the simulated levels around as if other programs
// were using the mixer. With frozen levels they are randomized once.
func startSimulation(sim *audio.SimulatedBackend, simulationOptions *model.SimulationOptions) chan bool {
	shutdownChan := make(chan bool, 1)

	randomizeLevels(sim)

	if simulationOptions.FreezeLevels {
		return shutdownChan
	}

	processOnInterval("simulation", shutdownChan, simulationOptions.IntervalMs, func() {
		driftLevels(sim)
	})

	return shutdownChan
}

func randomizeLevels(sim *audio.SimulatedBackend) {
	forEachSimulatedChannel(sim, func(key audio.Key, min int64, max int64) {
		sim.SetExternal(key.ID, key.Channel, key.Direction, min+rand.Int64N(max-min+1))
	})
}

func driftLevels(sim *audio.SimulatedBackend) {
	forEachSimulatedChannel(sim, func(key audio.Key, min int64, max int64) {
		// most channels sit still on any given tick
		if rand.IntN(4) != 0 {
			return
		}

		span := (max - min) / 20
		if span < 1 {
			span = 1
		}

		current := sim.Level(key.ID, key.Channel, key.Direction)
		next := audio.Clamp(current+rand.Int64N(2*span+1)-span, min, max)

		if next != current {
			util.TraceLog(fmt.Sprintf("simulation: %s %s %s %d -> %d", key.ID, key.Direction, key.Channel, current, next))
			sim.SetExternal(key.ID, key.Channel, key.Direction, next)
		}
	})
}

func forEachSimulatedChannel(sim *audio.SimulatedBackend, fn func(key audio.Key, min int64, max int64)) {
	for _, control := range sim.SimulatedControls() {
		min, max := ordered(control.PlaybackMin, control.PlaybackMax)
		for _, channel := range control.PlaybackChannels {
			fn(audio.Key{ID: control.ID, Direction: audio.Playback, Channel: channel}, min, max)
		}

		min, max = ordered(control.CaptureMin, control.CaptureMax)
		for _, channel := range control.CaptureChannels {
			fn(audio.Key{ID: control.ID, Direction: audio.Capture, Channel: channel}, min, max)
		}
	}
}

func ordered(a int64, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}
