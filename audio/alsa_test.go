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

//go:build linux && cgo && alsa

package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlsaDetached(t *testing.T) {
	assert := assert.New(t)

	backend := &AlsaBackend{}

	_, err := backend.Volume(ControlID{Name: "Master"}, ChannelFrontLeft, Playback)
	assert.Error(err)

	_, err = backend.Controls()
	assert.Error(err)

	assert.Error(backend.SetVolume(ControlID{Name: "Master"}, ChannelFrontLeft, Playback, 10))
	assert.NoError(backend.Close())
}
