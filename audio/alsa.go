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

/*
#cgo LDFLAGS: -lasound
#include <stdlib.h>
#include <alsa/asoundlib.h>

static int mixer_open(snd_mixer_t **handle, const char *card) {
    int err;

    if ((err = snd_mixer_open(handle, 0)) < 0) return err;
    if ((err = snd_mixer_attach(*handle, card)) < 0) goto fail;
    if ((err = snd_mixer_selem_register(*handle, NULL, NULL)) < 0) goto fail;
    if ((err = snd_mixer_load(*handle)) < 0) goto fail;
    return 0;

fail:
    snd_mixer_close(*handle);
    *handle = NULL;
    return err;
}

static snd_mixer_elem_t *mixer_find(snd_mixer_t *handle, const char *name, unsigned int index) {
    snd_mixer_selem_id_t *sid;

    snd_mixer_selem_id_alloca(&sid);
    snd_mixer_selem_id_set_index(sid, index);
    snd_mixer_selem_id_set_name(sid, name);
    return snd_mixer_find_selem(handle, sid);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"unsafe"
)

const alsaDefaultCard = "default"

// AlsaBackend drives an ALSA simple mixer through libasound. Elements are
// looked up by (name, index) on every access, never cached as pointers.
type AlsaBackend struct {
	handle *C.snd_mixer_t
	card   string
}

func init() {
	RegisterBackend("alsa", func() Backend {
		return &AlsaBackend{}
	})
}

func alsaError(op string, code C.int) error {
	return fmt.Errorf("%s: %s", op, C.GoString(C.snd_strerror(code)))
}

func (backend *AlsaBackend) Attach(device string) error {
	if device == "" {
		device = alsaDefaultCard
	}

	card := C.CString(device)
	defer C.free(unsafe.Pointer(card))

	if code := C.mixer_open(&backend.handle, card); code < 0 {
		return alsaError("attaching mixer "+device, code)
	}

	backend.card = device
	return nil
}

func (backend *AlsaBackend) Close() error {
	if backend.handle != nil {
		C.snd_mixer_close(backend.handle)
		backend.handle = nil
	}

	return nil
}

func (backend *AlsaBackend) Controls() ([]ControlInfo, error) {
	if backend.handle == nil {
		return nil, errors.New("alsa mixer not attached")
	}

	C.snd_mixer_handle_events(backend.handle)

	controls := make([]ControlInfo, 0)

	for elem := C.snd_mixer_first_elem(backend.handle); elem != nil; elem = C.snd_mixer_elem_next(elem) {
		if C.snd_mixer_selem_is_active(elem) == 0 {
			continue
		}

		info := ControlInfo{
			ID: ControlID{
				Name:  C.GoString(C.snd_mixer_selem_get_name(elem)),
				Index: int(C.snd_mixer_selem_get_index(elem)),
			},
		}

		if C.snd_mixer_selem_has_playback_volume(elem) != 0 {
			info.PlaybackChannels = alsaChannels(elem, Playback)
		}

		if C.snd_mixer_selem_has_capture_volume(elem) != 0 {
			info.CaptureChannels = alsaChannels(elem, Capture)
		}

		controls = append(controls, info)
	}

	return controls, nil
}

func alsaChannels(elem *C.snd_mixer_elem_t, direction Direction) []Channel {
	if direction == Capture {
		if C.snd_mixer_selem_is_capture_mono(elem) != 0 {
			return []Channel{ChannelMono}
		}
	} else if C.snd_mixer_selem_is_playback_mono(elem) != 0 {
		return []Channel{ChannelMono}
	}

	channels := make([]Channel, 0, 2)

	for _, channel := range []Channel{ChannelFrontLeft, ChannelFrontRight} {
		id := alsaChannelID(channel)

		var present C.int
		if direction == Capture {
			present = C.snd_mixer_selem_has_capture_channel(elem, id)
		} else {
			present = C.snd_mixer_selem_has_playback_channel(elem, id)
		}

		if present != 0 {
			channels = append(channels, channel)
		}
	}

	return channels
}

func alsaChannelID(channel Channel) C.snd_mixer_selem_channel_id_t {
	if channel == ChannelFrontRight {
		return C.snd_mixer_selem_channel_id_t(C.SND_MIXER_SCHN_FRONT_RIGHT)
	}

	// SND_MIXER_SCHN_MONO aliases front left
	return C.snd_mixer_selem_channel_id_t(C.SND_MIXER_SCHN_FRONT_LEFT)
}

func (backend *AlsaBackend) find(id ControlID) (*C.snd_mixer_elem_t, error) {
	if backend.handle == nil {
		return nil, errors.New("alsa mixer not attached")
	}

	name := C.CString(id.Name)
	defer C.free(unsafe.Pointer(name))

	elem := C.mixer_find(backend.handle, name, C.uint(id.Index))
	if elem == nil {
		return nil, fmt.Errorf("%w: %s", ErrControlVanished, id)
	}

	return elem, nil
}

func (backend *AlsaBackend) VolumeRange(id ControlID, direction Direction) (int64, int64, error) {
	elem, err := backend.find(id)
	if err != nil {
		return 0, 0, err
	}

	var min, max C.long
	var code C.int

	if direction == Capture {
		code = C.snd_mixer_selem_get_capture_volume_range(elem, &min, &max)
	} else {
		code = C.snd_mixer_selem_get_playback_volume_range(elem, &min, &max)
	}

	if code < 0 {
		return 0, 0, alsaError("reading volume range of "+id.String(), code)
	}

	return int64(min), int64(max), nil
}

func (backend *AlsaBackend) Volume(id ControlID, channel Channel, direction Direction) (int64, error) {
	elem, err := backend.find(id)
	if err != nil {
		return 0, err
	}

	// pick up changes made by other mixer clients since the last poll
	C.snd_mixer_handle_events(backend.handle)

	var value C.long
	var code C.int

	if direction == Capture {
		code = C.snd_mixer_selem_get_capture_volume(elem, alsaChannelID(channel), &value)
	} else {
		code = C.snd_mixer_selem_get_playback_volume(elem, alsaChannelID(channel), &value)
	}

	if code < 0 {
		return 0, alsaError("reading volume of "+id.String(), code)
	}

	return int64(value), nil
}

func (backend *AlsaBackend) SetVolume(id ControlID, channel Channel, direction Direction, value int64) error {
	elem, err := backend.find(id)
	if err != nil {
		return err
	}

	var code C.int

	if direction == Capture {
		code = C.snd_mixer_selem_set_capture_volume(elem, alsaChannelID(channel), C.long(value))
	} else {
		code = C.snd_mixer_selem_set_playback_volume(elem, alsaChannelID(channel), C.long(value))
	}

	if code < 0 {
		return alsaError("writing volume of "+id.String(), code)
	}

	return nil
}
