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
package model

// ControlState is the externally visible state of one slider.
type ControlState struct {
	Name      string `json:"name"`
	Index     int    `json:"index"`
	Direction string `json:"direction"`
	Channel   string `json:"channel"`
	Min       int64  `json:"min"`
	Max       int64  `json:"max"`
	Value     int64  `json:"value"`
	State     string `json:"state"`
	Master    bool   `json:"master,omitempty"`
}

// ControlDescription is one enumerated control channel, as printed by the
// controls command.
type ControlDescription struct {
	Name      string `json:"name"`
	Index     int    `json:"index"`
	Direction string `json:"direction"`
	Channel   string `json:"channel"`
	Min       int64  `json:"min"`
	Max       int64  `json:"max"`
}
