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

package sensor

import (
	"fmt"
	"math"

	"github.com/debold/PRTG-PureStorage/config"
	"github.com/debold/PRTG-PureStorage/flasharray"
	"github.com/debold/PRTG-PureStorage/prtg"
)

// binary terabyte
const bytesPerTB = 1 << 40

// summary is the aggregated view of one collection cycle, units already
// converted for PRTG consumption.
type summary struct {
	hardwareOK           int
	hardwareNotInstalled int
	hardwareNotOK        int

	volumesTB  float64
	usedTB     float64
	capacityTB float64
	freeTB     float64
	freePct    float64

	writesPerSec   float64
	readsPerSec    float64
	writeLatencyMs float64
	readLatencyMs  float64
}

// summarize is the pure aggregation step, no I/O. Hardware components are
// grouped by status into ok / not_installed / everything else, byte counts
// become binary terabytes and microsecond latencies become milliseconds.
//
// An array reporting zero capacity has no meaningful free-space percentage,
// that is treated as a collection error rather than letting NaN leak into
// the document.
func summarize(hardware []flasharray.Hardware, monitor *flasharray.Monitor, space *flasharray.Space) (*summary, error) {
	if space.Capacity == 0 {
		return nil, fmt.Errorf("array reported zero total capacity, cannot compute free space")
	}

	s := &summary{
		volumesTB:      round3(space.Volumes / bytesPerTB),
		usedTB:         round3(space.Total / bytesPerTB),
		capacityTB:     round3(space.Capacity / bytesPerTB),
		freeTB:         round3((space.Capacity - space.Total) / bytesPerTB),
		freePct:        round3((space.Capacity - space.Total) / space.Capacity * 100),
		writesPerSec:   monitor.WritesPerSec,
		readsPerSec:    monitor.ReadsPerSec,
		writeLatencyMs: round3(monitor.UsecPerWriteOp / 1000),
		readLatencyMs:  round3(monitor.UsecPerReadOp / 1000),
	}

	for _, component := range hardware {
		switch component.Status {
		case flasharray.StatusOK:
			s.hardwareOK++
		case flasharray.StatusNotInstalled:
			s.hardwareNotInstalled++
		default:
			s.hardwareNotOK++
		}
	}

	return s, nil
}

// channels assembles the fixed twelve-channel result. Channel names and
// casing (including "Total sorage capacity") are matched by the PRTG side
// and must never change.
func channels(s *summary, limits config.Limits) []prtg.Channel {
	return []prtg.Channel{
		{
			Channel: "Hardware ok count",
			Value:   s.hardwareOK,
			Unit:    "Count",
		},
		{
			Channel: "Hardware not installed count",
			Value:   s.hardwareNotInstalled,
			Unit:    "Count",
		},
		{
			Channel:       "Hardware NOT ok count",
			Value:         s.hardwareNotOK,
			Unit:          "Count",
			LimitMode:     1,
			LimitMaxError: limits.HardwareMaxError,
			LimitErrorMsg: limits.HardwareErrorMsg,
		},
		{
			Channel:     "Volumes (Bytes)",
			Value:       s.volumesTB,
			Unit:        "Custom",
			CustomUnit:  "TB",
			Float:       1,
			DecimalMode: "3",
		},
		{
			Channel:     "Total used space (Bytes)",
			Value:       s.usedTB,
			Unit:        "Custom",
			CustomUnit:  "TB",
			Float:       1,
			DecimalMode: "3",
		},
		{
			Channel:     "Total sorage capacity (Bytes)",
			Value:       s.capacityTB,
			Unit:        "Custom",
			CustomUnit:  "TB",
			Float:       1,
			DecimalMode: "3",
		},
		{
			Channel:     "Free space (Bytes)",
			Value:       s.freeTB,
			Unit:        "Custom",
			CustomUnit:  "TB",
			Float:       1,
			DecimalMode: "3",
		},
		{
			Channel:         "Free space (%)",
			Value:           s.freePct,
			Unit:            "Percent",
			Float:           1,
			LimitMode:       1,
			LimitMinError:   limits.FreeSpaceMinError,
			LimitErrorMsg:   limits.FreeSpaceErrorMsg,
			LimitMinWarning: limits.FreeSpaceMinWarning,
			LimitWarningMsg: limits.FreeSpaceWarningMsg,
		},
		{
			Channel:    "IOPS - Writes/sec",
			Value:      s.writesPerSec,
			Unit:       "Custom",
			CustomUnit: "IO/s",
		},
		{
			Channel:    "IOPS - Reads/sec",
			Value:      s.readsPerSec,
			Unit:       "Custom",
			CustomUnit: "IO/s",
		},
		{
			Channel:       "Write latency (ms)",
			Value:         s.writeLatencyMs,
			Unit:          "Custom",
			CustomUnit:    "ms",
			Float:         1,
			DecimalModeLC: 3,
		},
		{
			Channel:       "Read latency (ms)",
			Value:         s.readLatencyMs,
			Unit:          "Custom",
			CustomUnit:    "ms",
			Float:         1,
			DecimalModeLC: 3,
		},
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
