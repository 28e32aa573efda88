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

// Rows stacks primitives vertically, each with a fixed height, and scrolls
// so that the selected row is always on screen.
type Rows struct {
	*cview.Box

	items    []cview.Primitive
	heights  []int
	selected int

	sync.RWMutex
}

func NewRows() *Rows {
	p := &Rows{
		Box: cview.NewBox(),
	}
	p.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)
	return p
}

func (p *Rows) AddItem(item cview.Primitive, height int) int {
	p.Lock()
	defer p.Unlock()

	p.items = append(p.items, item)
	p.heights = append(p.heights, height)

	return len(p.items) - 1
}

func (p *Rows) Clear() {
	p.Lock()
	defer p.Unlock()

	p.items = nil
	p.heights = nil
	p.selected = 0
}

// Select marks the row that must stay visible.
func (p *Rows) Select(index int) {
	p.Lock()
	defer p.Unlock()

	p.selected = index
}

func (p *Rows) GetItemCount() int {
	p.RLock()
	defer p.RUnlock()

	return len(p.items)
}

// scrollOffset returns the number of lines hidden above the view.
func (p *Rows) scrollOffset(height int) int {
	top := 0
	for i := 0; i < p.selected && i < len(p.heights); i++ {
		top += p.heights[i]
	}

	bottom := top
	if p.selected < len(p.heights) {
		bottom += p.heights[p.selected]
	}

	if bottom > height {
		return bottom - height
	}

	return 0
}

// Draw draws this primitive onto the screen.
func (p *Rows) Draw(screen tcell.Screen) {
	if !p.GetVisible() {
		return
	}

	p.Box.Draw(screen)

	p.RLock()
	defer p.RUnlock()

	x, y, width, height := p.GetInnerRect()
	offset := p.scrollOffset(height)

	line := 0
	for i, item := range p.items {
		top := line - offset
		line += p.heights[i]

		if top < 0 || top+p.heights[i] > height {
			continue
		}

		item.SetRect(x, y+top, width, p.heights[i])
		item.Draw(screen)
	}
}
