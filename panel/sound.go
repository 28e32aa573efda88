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
	"errors"
	"fmt"
	"log/slog"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"

	"fox-settings/audio"
	"fox-settings/display/custom"
	"fox-settings/display/theme"
	"fox-settings/model"
)

const (
	soundTitle = "Sound"

	DefaultMasterControl = "Master"
)

var masterColors = map[int]tcell.Color{
	95: theme.Red,
	85: theme.Pink,
	70: theme.Yellow,
	0:  theme.Green,
}

// DeviceOpener opens the device a SoundPanel works on.
type DeviceOpener func() (*audio.Device, error)

func BackendOpener(backendID string) DeviceOpener {
	return func() (*audio.Device, error) {
		return audio.Open(backendID)
	}
}

// SoundPanel shows one slider per control channel of an audio device. The
// master control, when the device has one, is listed first.
type SoundPanel struct {
	open        DeviceOpener
	masterName  string
	masterIndex int

	device   *audio.Device
	registry *audio.Registry
	sliders  []*SyncedSlider

	masterCount int
	selected    int
	focused     bool
	failure     error

	root       *cview.Grid
	titleView  *cview.TextView
	meter      *custom.MasterMeter
	rows       *custom.Rows
	sliderRows []int
}

func NewSoundPanel(open DeviceOpener, masterName string, masterIndex int) *SoundPanel {
	if masterName == "" {
		masterName = DefaultMasterControl
	}

	sound := &SoundPanel{
		open:        open,
		masterName:  masterName,
		masterIndex: masterIndex,
		sliders:     make([]*SyncedSlider, 0),
	}

	sound.root = cview.NewGrid()
	sound.root.SetPadding(0, 0, 1, 1)
	sound.root.SetColumns(-1)
	sound.root.SetRows(1, 1, 1, 1, -1)
	sound.root.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)

	sound.titleView = cview.NewTextView()
	sound.titleView.SetDynamicColors(true)
	sound.root.AddItem(sound.titleView, 0, 0, 1, 1, 0, 0, false)

	sound.root.AddItem(custom.NewSeparator(), 1, 0, 1, 1, 0, 0, false)

	sound.meter = custom.NewMasterMeter(masterName, masterColors)
	sound.meter.SetEmptyColor(theme.SliderEmptyColor)
	sound.root.AddItem(sound.meter, 2, 0, 1, 1, 0, 0, false)

	sound.rows = custom.NewRows()
	sound.root.AddItem(sound.rows, 4, 0, 1, 1, 0, 0, false)

	sound.updateTitle()

	return sound
}

func (sound *SoundPanel) Title() string {
	return soundTitle
}

func (sound *SoundPanel) Render() cview.Primitive {
	return sound.root
}

func (sound *SoundPanel) Sliders() []*SyncedSlider {
	return sound.sliders
}

func (sound *SoundPanel) Len() int {
	return len(sound.sliders)
}

// Failure is the error of the last failed activation, if any.
func (sound *SoundPanel) Failure() error {
	return sound.failure
}

func (sound *SoundPanel) IsActive() bool {
	return sound.device != nil
}

// Activate opens the device and builds the sliders, discarding whatever the
// panel held before. Failing to open or enumerate the device is reported as
// audio.ErrUnavailable and leaves the panel empty with the device closed.
func (sound *SoundPanel) Activate() (err error) {
	sound.Deactivate()

	device, err := sound.open()
	if err != nil {
		if !errors.Is(err, audio.ErrUnavailable) {
			err = fmt.Errorf("%w: %w", audio.ErrUnavailable, err)
		}

		sound.fail(err)
		return err
	}

	defer func() {
		if err != nil {
			device.Close()
			sound.fail(err)
		}
	}()

	registry := audio.NewRegistry(device)

	descriptors, err := registry.Enumerate()
	if err != nil {
		return fmt.Errorf("%w: %w", audio.ErrUnavailable, err)
	}

	descriptors, masterCount := sound.masterFirst(registry, descriptors)

	sliders := make([]*SyncedSlider, 0, len(descriptors))
	for _, desc := range descriptors {
		sliders = append(sliders, NewSyncedSlider(registry.Bind(desc), channelLabel(desc.Channel)))
	}

	sound.device = device
	sound.registry = registry
	sound.sliders = sliders
	sound.masterCount = masterCount
	sound.selected = 0
	sound.failure = nil

	sound.layout()

	slog.Info(fmt.Sprintf("Sound panel bound %d control channels on %s", len(sliders), device.ID()))

	return nil
}

// Deactivate closes the device and drops every slider. Calling it again, or
// on a panel that never activated, does nothing.
func (sound *SoundPanel) Deactivate() {
	if sound.registry != nil {
		sound.registry.Close()
		sound.registry = nil
	}

	if sound.device != nil {
		sound.device.Close()
		sound.device = nil
	}

	sound.sliders = make([]*SyncedSlider, 0)
	sound.masterCount = 0
	sound.selected = 0

	sound.layout()
}

// Reload re-enumerates the device in place. Control channels that are
// still present keep their binding and slider, vanished ones are
// invalidated and dropped, new ones get fresh sliders. An inactive panel
// tries a full activation instead.
func (sound *SoundPanel) Reload() {
	slog.Info("Re-enumerating audio controls")

	if sound.registry == nil {
		if err := sound.Activate(); err != nil {
			slog.Warn("Sound panel unavailable: " + err.Error())
		}
		return
	}

	descriptors, err := sound.registry.Refresh()
	if err != nil {
		sound.Deactivate()
		sound.fail(fmt.Errorf("%w: %w", audio.ErrUnavailable, err))
		return
	}

	descriptors, masterCount := sound.masterFirst(sound.registry, descriptors)

	existing := make(map[audio.Key]*SyncedSlider, len(sound.sliders))
	for _, slider := range sound.sliders {
		existing[slider.Descriptor().Key()] = slider
	}

	sliders := make([]*SyncedSlider, 0, len(descriptors))
	for _, desc := range descriptors {
		binding := sound.registry.Bind(desc)

		if slider, ok := existing[desc.Key()]; ok && slider.Binding() == binding {
			sliders = append(sliders, slider)
			continue
		}

		sliders = append(sliders, NewSyncedSlider(binding, channelLabel(desc.Channel)))
	}

	sound.sliders = sliders
	sound.masterCount = masterCount

	if sound.selected >= len(sliders) {
		sound.selected = max(len(sliders)-1, 0)
	}

	sound.layout()

	slog.Info(fmt.Sprintf("Sound panel now has %d control channels", len(sliders)))
}

func (sound *SoundPanel) SetFocused(focused bool) {
	sound.focused = focused
	sound.updateTitle()
}

// HandleEvent forwards ev to every slider in order. Up and Down move the
// slider selection and 'r' re-enumerates the device.
func (sound *SoundPanel) HandleEvent(ev Event) bool {
	if ev.Kind == EventInput && ev.Key != nil {
		switch ev.Key.Key() {
		case tcell.KeyUp:
			sound.moveSelection(-1)
			return true
		case tcell.KeyDown:
			sound.moveSelection(1)
			return true
		case tcell.KeyRune:
			if ev.Key.Rune() == 'r' {
				sound.Reload()
				return true
			}
		}
	}

	handled := false

	for _, slider := range sound.sliders {
		if slider.HandleEvent(ev) {
			handled = true
		}
	}

	sound.updateMeter()

	return handled
}

func (sound *SoundPanel) Snapshot() []model.ControlState {
	states := make([]model.ControlState, len(sound.sliders))

	for i, slider := range sound.sliders {
		desc := slider.Descriptor()

		states[i] = model.ControlState{
			Name:      desc.ID.Name,
			Index:     desc.ID.Index,
			Direction: desc.Direction.String(),
			Channel:   desc.Channel.String(),
			Min:       desc.Min,
			Max:       desc.Max,
			Value:     slider.Displayed(),
			State:     slider.Binding().State().String(),
			Master:    i < sound.masterCount,
		}
	}

	return states
}

func (sound *SoundPanel) masterFirst(registry *audio.Registry, descriptors []audio.ControlDescriptor) ([]audio.ControlDescriptor, int) {
	master, ok := registry.FindByIdentity(sound.masterName, sound.masterIndex)
	if !ok {
		slog.Debug(fmt.Sprintf("No %s control on this device", ControlName(sound.masterName, sound.masterIndex)))
		return descriptors, 0
	}

	ordered := make([]audio.ControlDescriptor, 0, len(descriptors))

	for _, desc := range descriptors {
		if desc.ID == master.ID {
			ordered = append(ordered, desc)
		}
	}

	masterCount := len(ordered)

	for _, desc := range descriptors {
		if desc.ID != master.ID {
			ordered = append(ordered, desc)
		}
	}

	return ordered, masterCount
}

func (sound *SoundPanel) fail(err error) {
	slog.Error("Audio device unavailable: " + err.Error())

	sound.failure = err
	sound.layout()
}

func (sound *SoundPanel) moveSelection(delta int) {
	if len(sound.sliders) == 0 {
		return
	}

	sound.selected += delta

	if sound.selected < 0 {
		sound.selected = 0
	} else if sound.selected >= len(sound.sliders) {
		sound.selected = len(sound.sliders) - 1
	}

	sound.applySelection()
}

func (sound *SoundPanel) applySelection() {
	for i, slider := range sound.sliders {
		slider.SetFocused(i == sound.selected)
	}

	if sound.selected < len(sound.sliderRows) {
		sound.rows.Select(sound.sliderRows[sound.selected])
	}
}

// layout rebuilds the slider rows: a bold control name, then one group per
// direction with its channel sliders.
func (sound *SoundPanel) layout() {
	sound.rows.Clear()
	sound.sliderRows = make([]int, len(sound.sliders))

	if len(sound.sliders) == 0 {
		message := "No audio controls"
		if sound.failure != nil {
			message = fmt.Sprintf("[#%s]%s[-]", theme.RedRGB, sound.failure.Error())
		}

		messageView := cview.NewTextView()
		messageView.SetDynamicColors(true)
		messageView.SetText(message)
		sound.rows.AddItem(messageView, 1)

		sound.updateMeter()
		return
	}

	var lastID audio.ControlID
	var lastDirection audio.Direction

	for i, slider := range sound.sliders {
		desc := slider.Descriptor()
		newControl := i == 0 || desc.ID != lastID

		if newControl {
			if i > 0 {
				sound.rows.AddItem(cview.NewBox(), 1)
			}

			nameView := cview.NewTextView()
			nameView.SetDynamicColors(true)
			nameView.SetText("[::b]" + desc.ID.String())
			sound.rows.AddItem(nameView, 1)
		}

		if newControl || desc.Direction != lastDirection {
			groupView := cview.NewTextView()
			groupView.SetText("  " + directionLabel(desc.Direction))
			sound.rows.AddItem(groupView, 1)
		}

		sound.sliderRows[i] = sound.rows.AddItem(slider.Widget().GetGrid(), 1)

		lastID = desc.ID
		lastDirection = desc.Direction
	}

	sound.applySelection()
	sound.updateMeter()
}

func (sound *SoundPanel) updateTitle() {
	if sound.focused {
		sound.titleView.SetText(fmt.Sprintf("[black:#%s:b] %s [-:-:-]", theme.YellowRGB, soundTitle))
		return
	}

	sound.titleView.SetText(fmt.Sprintf("[::b] %s", soundTitle))
}

// updateMeter shows the mean of the master playback channels.
func (sound *SoundPanel) updateMeter() {
	var sum int64
	var count int64
	var desc audio.ControlDescriptor

	for _, slider := range sound.sliders[:sound.masterCount] {
		if slider.Descriptor().Direction != audio.Playback {
			continue
		}

		desc = slider.Descriptor()
		sum += slider.Displayed()
		count++
	}

	if count == 0 {
		sound.meter.SetAbsent()
		return
	}

	sound.meter.SetLevel(sum/count, desc.Min, desc.Max)
}

// ControlName formats a control identity the way the device names it.
func ControlName(name string, index int) string {
	return audio.ControlID{Name: name, Index: index}.String()
}
