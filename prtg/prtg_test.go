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

package prtg

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitSensorDocument(t *testing.T) {
	doc := NewSensor([]Channel{
		{
			Channel: "Hardware ok count",
			Value:   2,
			Unit:    "Count",
		},
		{
			Channel:     "Free space (Bytes)",
			Value:       6.0,
			Unit:        "Custom",
			CustomUnit:  "TB",
			Float:       1,
			DecimalMode: "3",
		},
		{
			Channel:       "Write latency (ms)",
			Value:         2.5,
			Unit:          "Custom",
			CustomUnit:    "ms",
			Float:         1,
			DecimalModeLC: 3,
		},
	})

	var buf bytes.Buffer
	err := Emit(&buf, doc)
	assert.Nil(t, err)

	// the document must be one parseable JSON object with a top level prtg key
	var parsed map[string]interface{}
	err = json.Unmarshal(buf.Bytes(), &parsed)
	assert.Nil(t, err)
	assert.Contains(t, parsed, "prtg")

	result := parsed["prtg"].(map[string]interface{})["result"].([]interface{})
	assert.Len(t, result, 3)

	count := result[0].(map[string]interface{})
	assert.Equal(t, "Hardware ok count", count["channel"])
	assert.Equal(t, float64(2), count["value"])
	// optional fields must be omitted entirely, not emitted as zero values
	assert.NotContains(t, count, "limitmode")
	assert.NotContains(t, count, "float")
	assert.NotContains(t, count, "DecimalMode")
	assert.NotContains(t, count, "decimalmode")

	// capacity channels carry the capitalized string form
	free := result[1].(map[string]interface{})
	assert.Equal(t, "3", free["DecimalMode"])
	assert.NotContains(t, free, "decimalmode")

	// latency channels carry the lowercase integer form
	latency := result[2].(map[string]interface{})
	assert.Equal(t, float64(3), latency["decimalmode"])
	assert.NotContains(t, latency, "DecimalMode")
}

func TestEmitErrorDocument(t *testing.T) {
	var buf bytes.Buffer
	err := Emit(&buf, NewError("required parameter '%s' is not set", "host"))
	assert.Nil(t, err)

	assert.JSONEq(t, `{"prtg":{"error":1,"message":"required parameter 'host' is not set"}}`, buf.String())
}

func TestChannelLimitFields(t *testing.T) {
	doc := NewSensor([]Channel{
		{
			Channel:       "Hardware NOT ok count",
			Value:         1,
			Unit:          "Count",
			LimitMode:     1,
			LimitMaxError: 1,
			LimitErrorMsg: "Hardware failure detected",
		},
		{
			Channel:         "Free space (%)",
			Value:           60.0,
			Unit:            "Percent",
			Float:           1,
			LimitMode:       1,
			LimitMinError:   10,
			LimitErrorMsg:   "Less than 10% free space left",
			LimitMinWarning: 20,
			LimitWarningMsg: "Less than 20% free space left",
		},
	})

	body, err := json.Marshal(doc)
	assert.Nil(t, err)

	var parsed map[string]interface{}
	err = json.Unmarshal(body, &parsed)
	assert.Nil(t, err)

	result := parsed["prtg"].(map[string]interface{})["result"].([]interface{})

	hw := result[0].(map[string]interface{})
	assert.Equal(t, float64(1), hw["limitmode"])
	assert.Equal(t, float64(1), hw["limitmaxerror"])
	assert.Equal(t, "Hardware failure detected", hw["limiterrormsg"])

	pct := result[1].(map[string]interface{})
	assert.Equal(t, float64(10), pct["limitminerror"])
	assert.Equal(t, float64(20), pct["limitminwarning"])
	assert.Equal(t, "Less than 20% free space left", pct["limitwarningmsg"])
}
