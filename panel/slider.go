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
	"fox-settings/audio"
	"fox-settings/display/custom"
)

const sliderHeaderWidth = 10

// SyncedSlider keeps one displayed value in step with one binding. Each
// event is reconciled: a value changed by the event is written to the
// hardware, otherwise the hardware value is pulled in.
type SyncedSlider struct {
	binding *audio.Binding
	editor  ValueEditor
	label   string

	displayed int64
	step      int64
	focused   bool

	widget *custom.VolumeSlider
}

func NewSyncedSlider(binding *audio.Binding, label string) *SyncedSlider {
	desc := binding.Descriptor()

	return &SyncedSlider{
		binding:   binding,
		editor:    NewKeyEditor(desc),
		label:     label,
		displayed: desc.Clamp(binding.Current()),
		step:      SliderStep(desc.Min, desc.Max),
	}
}

func (slider *SyncedSlider) SetEditor(editor ValueEditor) {
	slider.editor = editor
}

func (slider *SyncedSlider) Binding() *audio.Binding {
	return slider.binding
}

func (slider *SyncedSlider) Descriptor() audio.ControlDescriptor {
	return slider.binding.Descriptor()
}

func (slider *SyncedSlider) Label() string {
	return slider.label
}

func (slider *SyncedSlider) Displayed() int64 {
	return slider.displayed
}

func (slider *SyncedSlider) Step() int64 {
	return slider.step
}

func (slider *SyncedSlider) Focused() bool {
	return slider.focused
}

// SetFocused selects the slider that receives key input.
func (slider *SyncedSlider) SetFocused(focused bool) {
	slider.focused = focused

	if slider.widget != nil {
		slider.widget.SetFocused(focused)
	}
}

// HandleEvent reconciles the slider against ev. Only the focused slider
// lets its editor see input events.
func (slider *SyncedSlider) HandleEvent(ev Event) bool {
	return slider.Reconcile(func(value *int64) bool {
		if !slider.focused {
			return false
		}

		return slider.editor.Apply(ev, value)
	})
}

// Reconcile runs one synchronization step. deliver gets the chance to
// change the displayed value; its result is passed back to the caller.
func (slider *SyncedSlider) Reconcile(deliver func(value *int64) bool) bool {
	before := slider.displayed

	handled := deliver(&slider.displayed)

	if slider.displayed != before {
		slider.binding.Write(slider.displayed)
		slider.displayed = slider.binding.Current()
	} else {
		slider.displayed = slider.binding.Read()
	}

	slider.displayed = slider.binding.Descriptor().Clamp(slider.displayed)

	slider.refresh()

	return handled
}

func (slider *SyncedSlider) Widget() *custom.VolumeSlider {
	if slider.widget == nil {
		desc := slider.binding.Descriptor()

		slider.widget = custom.NewVolumeSlider(sliderHeaderWidth, slider.label, desc.Min, desc.Max)
		slider.widget.SetFocused(slider.focused)
		slider.refresh()
	}

	return slider.widget
}

func (slider *SyncedSlider) refresh() {
	if slider.widget == nil {
		return
	}

	slider.widget.SetValue(slider.displayed)
	slider.widget.SetFrozen(slider.binding.State() == audio.StateInvalidated)
}

func channelLabel(channel audio.Channel) string {
	switch channel {
	case audio.ChannelFrontLeft:
		return "Left :"
	case audio.ChannelFrontRight:
		return "Right:"
	}
	return "Mono :"
}

func directionLabel(direction audio.Direction) string {
	if direction == audio.Capture {
		return "Capture :"
	}
	return "Playback:"
}
