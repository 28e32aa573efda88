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
)

func TestNormalizeRange(t *testing.T) {
	assert := assert.New(t)

	min, max := NormalizeRange(0, 87)
	assert.Equal(int64(0), min)
	assert.Equal(int64(87), max)

	min, max = NormalizeRange(0, 0)
	assert.Equal(int64(0), min)
	assert.Equal(int64(1), max)

	min, max = NormalizeRange(50, 10)
	assert.Equal(int64(10), min)
	assert.Equal(int64(50), max)

	min, max = NormalizeRange(-12, -12)
	assert.Equal(int64(-12), min)
	assert.Equal(int64(-11), max)
}

func TestClamp(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(int64(0), Clamp(-5, 0, 10))
	assert.Equal(int64(10), Clamp(50, 0, 10))
	assert.Equal(int64(7), Clamp(7, 0, 10))

	desc := ControlDescriptor{Min: 0, Max: 1}
	assert.Equal(int64(1), desc.Clamp(5))
}

func TestControlIDString(t *testing.T) {
	assert.Equal(t, "Master", ControlID{Name: "Master"}.String())
	assert.Equal(t, "Capture,1", ControlID{Name: "Capture", Index: 1}.String())
}

func TestParseBackendID(t *testing.T) {
	tests := []struct {
		id     string
		driver string
		device string
	}{
		{"pulse", "pulse", ""},
		{"alsa/hw:0", "alsa", "hw:0"},
		{"ALSA/default", "alsa", "default"},
		{"pulse/unix:/run/user/1000/pulse/native", "pulse", "unix:/run/user/1000/pulse/native"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			driver, device := ParseBackendID(tt.id)
			assert.Equal(t, tt.driver, driver)
			assert.Equal(t, tt.device, device)
		})
	}
}

func TestBackendsRegistered(t *testing.T) {
	assert.Contains(t, Backends(), "sim")
	assert.Contains(t, Backends(), "pulse")
}
