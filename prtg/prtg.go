/*
 * Copyright 2025 Comcast Cable Communications Management, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package prtg holds the JSON document shapes consumed by the PRTG custom
// sensor mechanism. PRTG matches channels by exact name and casing, so every
// field tag in here is part of the external contract and must not change.
package prtg

import (
	"encoding/json"
	"fmt"
	"io"
)

// Channel is a single named data point inside a sensor result.
type Channel struct {
	Channel    string      `json:"channel"`
	Value      interface{} `json:"value"`
	Unit       string      `json:"unit,omitempty"`
	CustomUnit string      `json:"customunit,omitempty"`
	Float      int         `json:"float,omitempty"`

	// PRTG accepts either casing for the decimal mode option. Capacity
	// channels use the capitalized string form and latency channels the
	// lowercase integer form; existing sensor definitions depend on both
	// spellings staying as they are.
	DecimalMode   string `json:"DecimalMode,omitempty"`
	DecimalModeLC int    `json:"decimalmode,omitempty"`

	LimitMode       int     `json:"limitmode,omitempty"`
	LimitMaxError   float64 `json:"limitmaxerror,omitempty"`
	LimitMinError   float64 `json:"limitminerror,omitempty"`
	LimitMinWarning float64 `json:"limitminwarning,omitempty"`
	LimitErrorMsg   string  `json:"limiterrormsg,omitempty"`
	LimitWarningMsg string  `json:"limitwarningmsg,omitempty"`
}

// Sensor is the success document, {"prtg":{"result":[...]}}.
type Sensor struct {
	Prtg Result `json:"prtg"`
}

type Result struct {
	Channels []Channel `json:"result"`
}

// SensorError is the failure document, {"prtg":{"error":1,"message":...}}.
// PRTG parses the body rather than the process exit code, so failures are
// reported through this shape on stdout and the process still exits zero.
type SensorError struct {
	Prtg ErrorBody `json:"prtg"`
}

type ErrorBody struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}

func NewSensor(channels []Channel) *Sensor {
	return &Sensor{Prtg: Result{Channels: channels}}
}

func NewError(format string, args ...interface{}) *SensorError {
	return &SensorError{Prtg: ErrorBody{Error: 1, Message: fmt.Sprintf(format, args...)}}
}

// Emit serializes exactly one document to w. The sensor contract is a single
// JSON object on stdout per run, nothing else.
func Emit(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	return enc.Encode(v)
}
