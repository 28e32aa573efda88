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
package theme

import (
	"github.com/gdamore/tcell/v2"
)

const (
	Blue         = tcell.ColorBlue
	BlueRGB      = "0000FF"
	Green        = tcell.Color71
	GreenRGB     = "5FAF5F"
	Pink         = tcell.Color131
	PinkRGB      = "AF5F5F"
	Red          = tcell.Color124
	RedRGB       = "AF0000"
	SoftGreen    = tcell.Color72
	SoftGreenRGB = "5FAF87"
	Yellow       = tcell.Color142
	YellowRGB    = "AFAF00"
	Gray         = tcell.ColorGray
	GrayRGB      = "808080"

	BorderColor = tcell.Color243

	SliderEmptyColor     = tcell.Color242
	SliderFrozenColor    = tcell.Color237
	MenuInactiveColor    = tcell.Color245
	SeparatorColor       = tcell.Color240
	MeterBackgroundColor = tcell.Color233
)

const (
	RuneFilled    = rune(9607) // ▇
	RuneEmpty     = rune(9617) // ░
	RuneSeparator = rune(9472) // ─
	RuneSelected  = rune(9656) // ▸
	RuneFrozen    = rune(9932) // ⛌

	// mono/stereo possible indicators
	// 9900 ⚬
	// 9901 ⚭
)
