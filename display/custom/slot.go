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
	"sync"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"
)

// Slot draws whichever primitive was last put into it, filling its own
// rectangle.
type Slot struct {
	*cview.Box

	content cview.Primitive

	sync.RWMutex
}

func NewSlot() *Slot {
	p := &Slot{
		Box: cview.NewBox(),
	}
	p.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)
	return p
}

func (p *Slot) SetContent(content cview.Primitive) {
	p.Lock()
	defer p.Unlock()

	p.content = content
}

func (p *Slot) GetContent() cview.Primitive {
	p.RLock()
	defer p.RUnlock()

	return p.content
}

// Draw draws this primitive onto the screen.
func (p *Slot) Draw(screen tcell.Screen) {
	if !p.GetVisible() {
		return
	}

	p.Box.Draw(screen)

	p.RLock()
	defer p.RUnlock()

	if p.content == nil {
		return
	}

	x, y, width, height := p.GetInnerRect()
	p.content.SetRect(x, y, width, height)
	p.content.Draw(screen)
}
