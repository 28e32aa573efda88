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
	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"

	"fox-settings/display/theme"
)

// Separator is a horizontal rule across its full width.
type Separator struct {
	*cview.Box
}

func NewSeparator() *Separator {
	p := &Separator{
		Box: cview.NewBox(),
	}
	p.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)
	return p
}

// Draw draws this primitive onto the screen.
func (p *Separator) Draw(screen tcell.Screen) {
	if !p.GetVisible() {
		return
	}

	p.Box.Draw(screen)

	x, y, width, _ := p.GetInnerRect()
	style := tcell.StyleDefault.Foreground(theme.SeparatorColor).Background(p.GetBackgroundColor())

	for w := 0; w < width; w++ {
		screen.SetContent(x+w, y, theme.RuneSeparator, nil, style)
	}
}
