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

	"fox-settings/display/custom"
)

// Placeholder is a menu entry with nothing behind it yet.
type Placeholder struct {
	title string
	root  *cview.Grid
}

func NewPlaceholder(title string) *Placeholder {
	return &Placeholder{
		title: title,
	}
}

func (placeholder *Placeholder) Title() string {
	return placeholder.title
}

func (placeholder *Placeholder) Render() cview.Primitive {
	if placeholder.root != nil {
		return placeholder.root
	}

	placeholder.root = cview.NewGrid()
	placeholder.root.SetPadding(0, 0, 1, 1)
	placeholder.root.SetColumns(-1)
	placeholder.root.SetRows(1, 1, -1)
	placeholder.root.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)

	titleView := cview.NewTextView()
	titleView.SetTextAlign(cview.AlignCenter)
	titleView.SetText(placeholder.title)
	placeholder.root.AddItem(titleView, 0, 0, 1, 1, 0, 0, false)

	placeholder.root.AddItem(custom.NewSeparator(), 1, 0, 1, 1, 0, 0, false)

	bodyView := cview.NewTextView()
	bodyView.SetTextAlign(cview.AlignCenter)
	bodyView.SetText("Placeholder")
	placeholder.root.AddItem(bodyView, 2, 0, 1, 1, 0, 0, false)

	return placeholder.root
}

func (placeholder *Placeholder) HandleEvent(ev Event) bool {
	return false
}
