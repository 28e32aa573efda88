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
	"strings"

	"github.com/jfreymuth/pulse"
	"github.com/jfreymuth/pulse/proto"
)

const (
	pulseClientName = "fox-settings"

	// PA_VOLUME_NORM, 100% without software amplification
	pulseVolumeNorm = 0x10000

	pulseMasterName  = "Master"
	pulseCaptureName = "Capture"
)

// channel positions from the pulse channel map
const (
	pulsePositionMono       = 0
	pulsePositionFrontLeft  = 1
	pulsePositionFrontRight = 2
)

var errNotAttached = errors.New("pulse client not attached")

// PulseBackend talks to a PulseAudio (or pipewire-pulse) server. Sinks are
// playback controls and sources are capture controls, each named by its
// server name. "Master" and "Capture" resolve to the default sink and
// source at lookup time only.
type PulseBackend struct {
	client *pulse.Client
	server string
}

func init() {
	RegisterBackend("pulse", func() Backend {
		return &PulseBackend{}
	})
}

func (backend *PulseBackend) Attach(device string) error {
	options := []pulse.ClientOption{pulse.ClientApplicationName(pulseClientName)}

	if device != "" {
		options = append(options, pulse.ClientServerString(device))
	}

	client, err := pulse.NewClient(options...)
	if err != nil {
		return err
	}

	backend.client = client
	backend.server = device

	return nil
}

func (backend *PulseBackend) Close() error {
	if backend.client != nil {
		backend.client.Close()
		backend.client = nil
	}

	return nil
}

func (backend *PulseBackend) Controls() ([]ControlInfo, error) {
	sinks, sources, err := backend.snapshot()
	if err != nil {
		return nil, err
	}

	controls := make([]ControlInfo, 0, len(sinks)+len(sources))

	for _, sink := range sinks {
		controls = append(controls, ControlInfo{
			ID:               ControlID{Name: sink.SinkName},
			PlaybackChannels: pulseChannels(sink.ChannelMap),
		})
	}

	for _, source := range sources {
		if isMonitorSource(source.SourceName) {
			continue
		}

		controls = append(controls, ControlInfo{
			ID:              ControlID{Name: source.SourceName},
			CaptureChannels: pulseChannels(source.ChannelMap),
		})
	}

	return controls, nil
}

func (backend *PulseBackend) VolumeRange(id ControlID, direction Direction) (int64, int64, error) {
	if backend.client == nil {
		return 0, 0, errNotAttached
	}

	return 0, pulseVolumeNorm, nil
}

func (backend *PulseBackend) Volume(id ControlID, channel Channel, direction Direction) (int64, error) {
	volumes, channelMap, _, err := backend.lookup(id, direction)
	if err != nil {
		return 0, err
	}

	position, err := pulsePosition(id, channel, channelMap)
	if err != nil {
		return 0, err
	}

	return int64(volumes[position]), nil
}

func (backend *PulseBackend) SetVolume(id ControlID, channel Channel, direction Direction, value int64) error {
	volumes, channelMap, index, err := backend.lookup(id, direction)
	if err != nil {
		return err
	}

	position, err := pulsePosition(id, channel, channelMap)
	if err != nil {
		return err
	}

	updated := make(proto.ChannelVolumes, len(volumes))
	copy(updated, volumes)
	updated[position] = uint32(Clamp(value, 0, pulseVolumeNorm))

	if direction == Capture {
		return backend.client.RawRequest(&proto.SetSourceVolume{
			SourceIndex:    index,
			ChannelVolumes: updated,
		}, nil)
	}

	return backend.client.RawRequest(&proto.SetSinkVolume{
		SinkIndex:      index,
		ChannelVolumes: updated,
	}, nil)
}

func (backend *PulseBackend) ResolveAlias(id ControlID) (ControlID, bool) {
	if backend.client == nil {
		return ControlID{}, false
	}

	var server proto.GetServerInfoReply
	if err := backend.client.RawRequest(&proto.GetServerInfo{}, &server); err != nil {
		return ControlID{}, false
	}

	return pulseAlias(id, server.DefaultSinkName, server.DefaultSourceName)
}

func (backend *PulseBackend) snapshot() (proto.GetSinkInfoListReply, proto.GetSourceInfoListReply, error) {
	var sinks proto.GetSinkInfoListReply
	var sources proto.GetSourceInfoListReply

	if backend.client == nil {
		return sinks, sources, errNotAttached
	}

	if err := backend.client.RawRequest(&proto.GetSinkInfoList{}, &sinks); err != nil {
		return sinks, sources, err
	}

	if err := backend.client.RawRequest(&proto.GetSourceInfoList{}, &sources); err != nil {
		return sinks, sources, err
	}

	return sinks, sources, nil
}

// lookup re-resolves the control by its server name on every call, so a
// sink that was removed shows up as a vanished control instead of a stale
// index.
func (backend *PulseBackend) lookup(id ControlID, direction Direction) (proto.ChannelVolumes, proto.ChannelMap, uint32, error) {
	sinks, sources, err := backend.snapshot()
	if err != nil {
		return nil, nil, 0, err
	}

	if id.Index == 0 && direction == Playback {
		for _, sink := range sinks {
			if sink.SinkName == id.Name {
				return sink.ChannelVolumes, sink.ChannelMap, sink.SinkIndex, nil
			}
		}
	} else if id.Index == 0 {
		for _, source := range sources {
			if source.SourceName == id.Name && !isMonitorSource(source.SourceName) {
				return source.ChannelVolumes, source.ChannelMap, source.SourceIndex, nil
			}
		}
	}

	return nil, nil, 0, fmt.Errorf("%w: %s %s", ErrControlVanished, direction, id)
}

func pulseAlias(id ControlID, defaultSink string, defaultSource string) (ControlID, bool) {
	if id.Index != 0 {
		return ControlID{}, false
	}

	switch {
	case id.Name == pulseMasterName && defaultSink != "":
		return ControlID{Name: defaultSink}, true
	case id.Name == pulseCaptureName && defaultSource != "":
		return ControlID{Name: defaultSource}, true
	}

	return ControlID{}, false
}

func isMonitorSource(name string) bool {
	return strings.HasSuffix(name, ".monitor")
}

func pulseChannels(channelMap proto.ChannelMap) []Channel {
	if len(channelMap) == 1 {
		return []Channel{ChannelMono}
	}

	channels := make([]Channel, 0, 2)

	for _, position := range channelMap {
		switch int(position) {
		case pulsePositionFrontLeft:
			channels = append(channels, ChannelFrontLeft)
		case pulsePositionFrontRight:
			channels = append(channels, ChannelFrontRight)
		}
	}

	if len(channels) == 0 {
		return []Channel{ChannelMono}
	}

	return channels
}

func pulsePosition(id ControlID, channel Channel, channelMap proto.ChannelMap) (int, error) {
	if channel == ChannelMono && len(channelMap) > 0 {
		return 0, nil
	}

	want := pulsePositionMono
	switch channel {
	case ChannelFrontLeft:
		want = pulsePositionFrontLeft
	case ChannelFrontRight:
		want = pulsePositionFrontRight
	}

	for i, position := range channelMap {
		if int(position) == want {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w: %s has no %s channel", ErrControlVanished, id, channel)
}
