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
	"sort"
	"sync"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"
)

// MasterMeter shows the master playback level as a horizontal bar with a
// percentage, colored by level.
type MasterMeter struct {
	*cview.Box

	emptyRune  rune
	emptyColor tcell.Color
	filledRune rune

	label   string
	percent int
	present bool

	// percentage to foreground color map
	colorMap map[int]tcell.Color

	sync.RWMutex
}

func NewMasterMeter(label string, colorMap map[int]tcell.Color) *MasterMeter {
	p := &MasterMeter{
		Box:        cview.NewBox(),
		emptyRune:  rune(9617),
		emptyColor: cview.Styles.PrimitiveBackgroundColor,
		filledRune: rune(9607),
		label:      label,
		colorMap:   colorMap,
	}
	p.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)
	return p
}

func (p *MasterMeter) SetEmptyColor(empty tcell.Color) {
	p.Lock()
	defer p.Unlock()

	p.emptyColor = empty
}

// SetLevel maps value within [min, max] to a percentage.
func (p *MasterMeter) SetLevel(value int64, min int64, max int64) {
	p.Lock()
	defer p.Unlock()

	p.present = true

	if max <= min {
		p.percent = 0
		return
	}

	p.percent = int((value - min) * 100 / (max - min))

	if p.percent < 0 {
		p.percent = 0
	} else if p.percent > 100 {
		p.percent = 100
	}
}

// SetAbsent marks the meter as having no master control to show.
func (p *MasterMeter) SetAbsent() {
	p.Lock()
	defer p.Unlock()

	p.present = false
	p.percent = 0
}

func (p *MasterMeter) GetPercent() int {
	p.RLock()
	defer p.RUnlock()

	return p.percent
}

func getLevelColor(colorMap map[int]tcell.Color, currentLevel int) tcell.Color {
	keys := make([]int, 0, len(colorMap))

	for k := range colorMap {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))

	for _, mapLevel := range keys {
		if currentLevel >= mapLevel {
			return colorMap[mapLevel]
		}
	}

	return tcell.ColorDefault
}

// Draw draws this primitive onto the screen.
func (p *MasterMeter) Draw(screen tcell.Screen) {
	if !p.GetVisible() {
		return
	}

	p.Box.Draw(screen)

	p.RLock()
	defer p.RUnlock()

	x, y, width, _ := p.GetInnerRect()
	background := tcell.StyleDefault.Background(p.GetBackgroundColor())

	value := "n/a"
	if p.present {
		value = fmt.Sprintf("%3d%%", p.percent)
	}

	header := []rune(fmt.Sprintf("%s ", p.label))
	footer := []rune(fmt.Sprintf(" %s", value))

	barWidth := width - len(header) - len(footer)
	if barWidth < 0 {
		barWidth = 0
	}

	col := x
	for _, r := range header {
		screen.SetContent(col, y, r, nil, background.Bold(true))
		col++
	}

	filled := barWidth * p.percent / 100
	color := getLevelColor(p.colorMap, p.percent)

	for w := 0; w < barWidth; w++ {
		if w < filled {
			screen.SetContent(col, y, p.filledRune, nil, background.Foreground(color))
		} else {
			screen.SetContent(col, y, p.emptyRune, nil, background.Foreground(p.emptyColor).Dim(true))
		}
		col++
	}

	for _, r := range footer {
		screen.SetContent(col, y, r, nil, background.Bold(true).Foreground(color))
		col++
	}
}
