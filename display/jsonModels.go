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

import "fox-settings/model"

type JsonStatus struct {
	MessageType string `json:"message_type"`

	Panels     []string `json:"panels"`
	ErrorCount int      `json:"error_count"`
}

type JsonLog struct {
	MessageType string `json:"message_type"`

	Date    string `json:"date"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

type JsonControls struct {
	MessageType string `json:"message_type"`

	Panel    string               `json:"panel"`
	Controls []model.ControlState `json:"controls"`
}
