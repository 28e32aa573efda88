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
package display

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"fox-settings/display/custom"
	"fox-settings/display/theme"
	"fox-settings/panel"
	"fox-settings/reaper"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"
)

//
// constants
//

const (
	layoutMenuWidth = 26
	layoutLogHeight = 8

	appTitle = "Fox Settings"
)

//
// types
//

type Tui struct {
	app             *cview.Application
	shutdownChannel chan bool
	tickInterval    time.Duration

	panels      []panel.Panel
	selected    int
	menuFocused bool

	errorCount int
	lock       sync.Mutex

	gridApp      *cview.Grid
	tvMenu       *cview.TextView
	tvLogs       *cview.TextView
	tvErrorCount *custom.CounterField
	panelSlot    *custom.Slot
}

//
// constructor
//

func NewTui(tickInterval time.Duration) *Tui {
	tui := &Tui{
		shutdownChannel: make(chan bool, 1),
		tickInterval:    tickInterval,
		errorCount:      0,
		panels:          make([]panel.Panel, 0),
		menuFocused:     true,
	}

	return tui
}

//
// lifecycle managment
//

func (tui *Tui) Initialize(panels []panel.Panel) {
	tui.app = cview.NewApplication()
	defer tui.app.HandlePanic()

	tui.panels = panels

	//
	// main application grid
	tui.gridApp = cview.NewGrid()
	tui.gridApp.SetPadding(0, 0, 0, 0)
	tui.gridApp.SetColumns(layoutMenuWidth, -1)
	tui.gridApp.SetRows(1, -1, layoutLogHeight)
	tui.gridApp.SetBorders(true)
	tui.gridApp.SetBordersColor(theme.BorderColor)
	tui.gridApp.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)

	//
	// header: app title and error counter
	tvTitle := cview.NewTextView()
	tvTitle.SetDynamicColors(true)
	tvTitle.SetText("[::b]  " + appTitle)
	tui.gridApp.AddItem(tvTitle, 0, 0, 1, 1, 0, 0, false)

	tui.tvErrorCount = custom.NewCounterField("Errors", theme.Gray, theme.Red)
	tui.gridApp.AddItem(tui.tvErrorCount, 0, 1, 1, 1, 0, 0, false)

	//
	// settings menu
	tui.tvMenu = cview.NewTextView()
	tui.tvMenu.SetDynamicColors(true)
	tui.tvMenu.SetPadding(0, 0, 1, 1)
	tui.gridApp.AddItem(tui.tvMenu, 1, 0, 1, 1, 0, 0, false)

	//
	// active panel
	tui.panelSlot = custom.NewSlot()
	tui.gridApp.AddItem(tui.panelSlot, 1, 1, 1, 1, 0, 0, false)

	//
	// log output view
	tui.tvLogs = cview.NewTextView()
	tui.tvLogs.SetPadding(0, 0, 0, 0)
	tui.tvLogs.SetDynamicColors(true)
	tui.tvLogs.SetScrollable(true)
	tui.gridApp.AddItem(tui.tvLogs, 2, 0, 1, 2, 0, 0, true)

	tui.selectPanel(0)

	tui.app.SetRoot(tui.gridApp, true)
}

func (tui *Tui) Start() {
	reaper.Register("tui")

	go func() {
		defer tui.app.HandlePanic()

		// Capture user input
		tui.app.SetInputCapture(tui.eventHandler)

		if err := tui.app.Run(); err != nil {
			panic(err)
		}

		tui.shutdownChannel <- true
		reaper.Done("tui")

		// the application can also stop on its own, make sure the rest follows
		go reaper.Reap()
	}()

	go tui.excecuteLoop()
}

func (tui *Tui) Shutdown() {
	slog.Debug("Shutting down TUI")
	tui.app.Stop()

	slog.Debug("Waiting for TUI to shut down")
	tui.WaitForShutdown()
}

func (tui *Tui) IsShutdown() bool {
	return len(tui.shutdownChannel) > 0
}

func (tui *Tui) WaitForShutdown() {
	<-tui.shutdownChannel
	// leave the signal in place for IsShutdown and the tick loop
	tui.shutdownChannel <- true
}

//
// private functions
//

func (tui *Tui) eventHandler(event *tcell.EventKey) *tcell.EventKey {
	// Anything handled here will be executed on the main thread
	if len(tui.panels) == 0 {
		return event
	}

	switch event.Key() {
	case tcell.KeyCtrlC:
		go reaper.Reap()
		return nil
	case tcell.KeyTab, tcell.KeyBacktab:
		tui.setMenuFocus(!tui.menuFocused)
		return nil
	case tcell.KeyRune:
		if event.Rune() == 'q' {
			go reaper.Reap()
			return nil
		}
	}

	if tui.menuFocused {
		tui.menuEvent(event)
		return nil
	}

	tui.currentPanel().HandleEvent(panel.InputEvent(event))

	return nil
}

func (tui *Tui) menuEvent(event *tcell.EventKey) {
	switch event.Key() {
	case tcell.KeyUp:
		tui.selectPanel(tui.selected - 1)
	case tcell.KeyDown:
		tui.selectPanel(tui.selected + 1)
	case tcell.KeyHome:
		tui.selectPanel(0)
	case tcell.KeyEnd:
		tui.selectPanel(len(tui.panels) - 1)
	case tcell.KeyEnter, tcell.KeyRight:
		tui.setMenuFocus(false)
	}
}

func (tui *Tui) selectPanel(index int) {
	if len(tui.panels) == 0 {
		return
	}

	if index < 0 {
		index = 0
	} else if index >= len(tui.panels) {
		index = len(tui.panels) - 1
	}

	tui.selected = index
	tui.panelSlot.SetContent(tui.currentPanel().Render())

	tui.updateMenu()
}

func (tui *Tui) setMenuFocus(menuFocused bool) {
	tui.menuFocused = menuFocused

	if focusable, ok := tui.currentPanel().(panel.Focusable); ok {
		focusable.SetFocused(!menuFocused)
	}

	tui.updateMenu()
}

func (tui *Tui) currentPanel() panel.Panel {
	return tui.panels[tui.selected]
}

func (tui *Tui) updateMenu() {
	highlight := "[black:#" + theme.YellowRGB + "]"
	if !tui.menuFocused {
		highlight = "[black:#" + theme.GrayRGB + "]"
	}

	var menu strings.Builder

	for i, p := range tui.panels {
		if i == tui.selected {
			menu.WriteString(fmt.Sprintf("%s%c %s[-:-:-]\n", highlight, theme.RuneSelected, p.Title()))
		} else {
			menu.WriteString(fmt.Sprintf("  %s\n", p.Title()))
		}
	}

	tui.tvMenu.SetText(menu.String())
}

func (tui *Tui) excecuteLoop() {
	defer tui.app.HandlePanic()

	slog.Debug("TUI loop started")

	for {
		if len(tui.shutdownChannel) > 0 {
			slog.Info("TUI shutting down")
			break
		}

		if len(tui.panels) > 0 {
			tui.app.QueueUpdateDraw(func() {
				tui.currentPanel().HandleEvent(panel.TickEvent())
			})
		}
		time.Sleep(tui.tickInterval)
	}
}

//
// status update functions
//

func (tui *Tui) IncrementErrorCount() {
	tui.lock.Lock()
	defer tui.lock.Unlock()

	tui.errorCount++
	tui.tvErrorCount.SetCount(tui.errorCount)
}

//
// logging
//

func (tui *Tui) WriteLevelLog(level slog.Level, message string) {
	color := "-"

	if level == slog.LevelWarn {
		color = "#" + theme.YellowRGB
	} else if level == slog.LevelError {
		color = "#" + theme.RedRGB + "::b"
	} else if level <= slog.LevelDebug {
		color = "#" + theme.GrayRGB
	}

	tui.tvLogs.Write([]byte(fmt.Sprintf("[%s][%s[] [%s[] %s[-:-:-]\n", color, time.Now().Format("2006-01-02 15:04:05"), level.String(), message)))
	tui.tvLogs.ScrollToEnd()
}
