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
package app

import (
	"time"

	"fox-settings/reaper"
)

// processOnInterval runs process right away and then on every tick until
// shutdownChan has a value or the reaper was triggered.
func processOnInterval(name string, shutdownChan chan bool, milliseconds int, process func()) {
	reaper.Register(name)

	go func() {
		defer reaper.Done(name)

		process()

		t := time.NewTicker(time.Duration(milliseconds) * time.Millisecond)
		defer t.Stop()

		for range t.C {
			if len(shutdownChan) > 0 || reaper.Reaped() {
				break
			}

			process()
		}
	}()
}
