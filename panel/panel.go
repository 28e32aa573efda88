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
	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"

	"fox-settings/model"
)

// Panel is one entry of the settings menu.
type Panel interface {
	Title() string
	Render() cview.Primitive

	// HandleEvent returns true when the event was consumed.
	HandleEvent(ev Event) bool
}

// Focusable panels are told when the host moves keyboard focus to or away
// from them.
type Focusable interface {
	SetFocused(focused bool)
}

// Snapshotter panels expose their control state to headless hosts.
type Snapshotter interface {
	Snapshot() []model.ControlState
}

type EventKind int8

const (
	EventInput EventKind = iota
	EventTick
)

func (k EventKind) String() string {
	switch k {
	case EventInput:
		return "input"
	case EventTick:
		return "tick"
	}
	return "unknown"
}

type Event struct {
	Kind EventKind
	Key  *tcell.EventKey
}

func TickEvent() Event {
	return Event{Kind: EventTick}
}

func InputEvent(key *tcell.EventKey) Event {
	return Event{Kind: EventInput, Key: key}
}

// DefaultPlaceholders are the menu entries listed after Sound.
var DefaultPlaceholders = []string{
	"Wi-Fi",
	"Network",
	"Bluetooth",
	"Background",
	"Notification",
	"Search",
	"Application",
	"Confidentiality",
	"Online account",
	"Sharing",
	"Energy",
	"Screen",
	"Mouse & Trackpad",
	"Printer",
	"Amovible device",
	"Colors",
	"State and language",
	"Universal access",
	"Users",
	"Default application",
	"Date and time",
	"About",
}
