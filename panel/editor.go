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
	"github.com/gdamore/tcell/v2"

	"fox-settings/audio"
)

// ValueEditor is the widget side of a slider: it turns an event into a new
// value for the slider to reconcile.
type ValueEditor interface {
	// Apply may change *value and reports whether the event was consumed.
	Apply(ev Event, value *int64) bool
}

// KeyEditor moves a value with the arrow, page and home/end keys.
type KeyEditor struct {
	Min  int64
	Max  int64
	Step int64
}

func NewKeyEditor(desc audio.ControlDescriptor) *KeyEditor {
	return &KeyEditor{
		Min:  desc.Min,
		Max:  desc.Max,
		Step: SliderStep(desc.Min, desc.Max),
	}
}

// SliderStep is one hundredth of the range, at least 1.
func SliderStep(min int64, max int64) int64 {
	step := (max - min) / 100
	if step < 1 {
		return 1
	}

	return step
}

func (editor *KeyEditor) Apply(ev Event, value *int64) bool {
	if ev.Kind != EventInput || ev.Key == nil {
		return false
	}

	next := *value

	switch ev.Key.Key() {
	case tcell.KeyLeft:
		next -= editor.Step
	case tcell.KeyRight:
		next += editor.Step
	case tcell.KeyPgDn:
		next -= 10 * editor.Step
	case tcell.KeyPgUp:
		next += 10 * editor.Step
	case tcell.KeyHome:
		next = editor.Min
	case tcell.KeyEnd:
		next = editor.Max
	case tcell.KeyRune:
		switch ev.Key.Rune() {
		case '-', '_':
			next -= editor.Step
		case '+', '=':
			next += editor.Step
		default:
			return false
		}
	default:
		return false
	}

	*value = audio.Clamp(next, editor.Min, editor.Max)
	return true
}
