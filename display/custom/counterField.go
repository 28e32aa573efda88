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
	"sync"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"
)

// CounterField is a right aligned "label: count" pair. The count is drawn
// in the alert color once it is above zero.
type CounterField struct {
	*cview.Box

	label      string
	count      int
	color      tcell.Color
	alertColor tcell.Color

	sync.RWMutex
}

func NewCounterField(label string, color tcell.Color, alertColor tcell.Color) *CounterField {
	return &CounterField{
		Box:        cview.NewBox(),
		label:      label,
		color:      color,
		alertColor: alertColor,
	}
}

func (field *CounterField) SetCount(count int) {
	field.Lock()
	defer field.Unlock()

	field.count = count
}

func (field *CounterField) GetCount() int {
	field.RLock()
	defer field.RUnlock()

	return field.count
}

func (field *CounterField) Draw(screen tcell.Screen) {
	field.Box.Draw(screen)

	field.RLock()
	defer field.RUnlock()

	x, y, width, height := field.GetInnerRect()
	if height < 1 || width < 1 {
		return
	}

	color := field.color
	if field.count > 0 {
		color = field.alertColor
	}

	label := []rune(field.label + ": ")
	value := []rune(fmt.Sprintf("%d", field.count))

	col := x + width - len(label) - len(value) - 1
	if col < x {
		col = x
	}

	style := tcell.StyleDefault.Background(field.GetBackgroundColor())

	for _, r := range label {
		if col >= x+width {
			return
		}
		screen.SetContent(col, y, r, nil, style.Foreground(field.color))
		col++
	}

	for _, r := range value {
		if col >= x+width {
			return
		}
		screen.SetContent(col, y, r, nil, style.Foreground(color).Bold(field.count > 0))
		col++
	}
}
