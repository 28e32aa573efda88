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

import "fmt"

type Direction int8

const (
	Playback Direction = iota
	Capture
)

func (d Direction) String() string {
	switch d {
	case Playback:
		return "playback"
	case Capture:
		return "capture"
	}
	return "unknown"
}

type Channel int8

const (
	ChannelMono Channel = iota
	ChannelFrontLeft
	ChannelFrontRight
)

func (c Channel) String() string {
	switch c {
	case ChannelMono:
		return "mono"
	case ChannelFrontLeft:
		return "left"
	case ChannelFrontRight:
		return "right"
	}
	return "unknown"
}

// ControlID identifies a mixer control the way the device names it. The
// index separates controls that share a name (e.g. two "Capture" elements).
type ControlID struct {
	Name  string
	Index int
}

func (id ControlID) String() string {
	if id.Index == 0 {
		return id.Name
	}

	return fmt.Sprintf("%s,%d", id.Name, id.Index)
}

// ControlInfo is what a backend reports for one control while enumerating.
type ControlInfo struct {
	ID               ControlID
	PlaybackChannels []Channel
	CaptureChannels  []Channel
}

func (info ControlInfo) Channels(direction Direction) []Channel {
	if direction == Capture {
		return info.CaptureChannels
	}

	return info.PlaybackChannels
}

// ControlDescriptor is an immutable snapshot of one adjustable channel of a
// control: its identity plus the effective volume range.
type ControlDescriptor struct {
	ID        ControlID
	Channel   Channel
	Direction Direction
	Min       int64
	Max       int64
}

// Key is the stable identity used to bind a descriptor. It never depends on
// the position the device reported the control at.
type Key struct {
	ID        ControlID
	Direction Direction
	Channel   Channel
}

func (desc ControlDescriptor) Key() Key {
	return Key{
		ID:        desc.ID,
		Direction: desc.Direction,
		Channel:   desc.Channel,
	}
}

func (desc ControlDescriptor) Clamp(value int64) int64 {
	return Clamp(value, desc.Min, desc.Max)
}

func (desc ControlDescriptor) String() string {
	return fmt.Sprintf("%s %s %s [%d..%d]", desc.ID, desc.Direction, desc.Channel, desc.Min, desc.Max)
}

func Clamp(value int64, min int64, max int64) int64 {
	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NormalizeRange applies the range policy used for every control: reversed
// bounds are swapped and an empty span is widened by one unit so that a
// slider can always move.
func NormalizeRange(min int64, max int64) (int64, int64) {
	if min > max {
		min, max = max, min
	}

	if min == max {
		max = min + 1
	}

	return min, max
}
