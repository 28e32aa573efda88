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
package custom

import (
	"fmt"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"

	"fox-settings/display/theme"
)

// VolumeSlider draws one control channel as a labelled bar with its raw
// value. It only renders; value changes come from the owning slider.
type VolumeSlider struct {
	min int64
	max int64

	focused bool
	frozen  bool

	grid       *cview.Grid
	headerView *cview.TextView
	barView    *cview.ProgressBar
	valueView  *cview.TextView
}

func NewVolumeSlider(headerWidth int, label string, min int64, max int64) *VolumeSlider {
	slider := VolumeSlider{
		grid: cview.NewGrid(),
		min:  min,
		max:  max,
	}

	slider.grid.SetPadding(0, 0, 0, 0)
	slider.grid.SetColumns(headerWidth, -1, 10)
	slider.grid.SetRows(1)

	slider.headerView = cview.NewTextView()
	slider.headerView.SetTextAlign(cview.AlignRight)
	slider.headerView.Write([]byte(label + " "))
	slider.grid.AddItem(slider.headerView, 0, 0, 1, 1, 0, 0, false)

	slider.barView = cview.NewProgressBar()
	slider.barView.SetFilledRune(theme.RuneFilled)
	slider.barView.SetEmptyRune(theme.RuneEmpty)
	slider.barView.SetEmptyColor(theme.SliderEmptyColor)
	slider.barView.SetMax(int(max - min))
	slider.grid.AddItem(slider.barView, 0, 1, 1, 1, 0, 0, false)

	slider.valueView = cview.NewTextView()
	slider.valueView.SetPadding(0, 0, 1, 0)
	slider.grid.AddItem(slider.valueView, 0, 2, 1, 1, 0, 0, false)

	slider.SetValue(min)

	return &slider
}

func (slider *VolumeSlider) SetValue(value int64) {
	slider.barView.SetProgress(int(value - slider.min))

	slider.valueView.Clear()
	slider.valueView.Write([]byte(fmt.Sprintf("%d", value)))
}

func (slider *VolumeSlider) SetFocused(focused bool) {
	slider.focused = focused
	slider.updateColors()
}

// SetFrozen greys the slider out once its control is gone.
func (slider *VolumeSlider) SetFrozen(frozen bool) {
	slider.frozen = frozen
	slider.updateColors()
}

func (slider *VolumeSlider) updateColors() {
	color := tcell.ColorDefault
	filled := theme.Green

	if slider.focused {
		color = theme.Yellow
		filled = theme.Yellow
	}

	if slider.frozen {
		color = theme.SliderFrozenColor
		filled = theme.SliderFrozenColor
	}

	slider.headerView.SetTextColor(color)
	slider.valueView.SetTextColor(color)
	slider.barView.SetFilledColor(filled)
}

func (slider *VolumeSlider) GetGrid() *cview.Grid {
	return slider.grid
}
