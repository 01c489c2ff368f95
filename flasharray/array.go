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

package flasharray

import (
	"context"
	"fmt"
)

// GET /api/1.x/array?action=monitor

// Monitor is one real-time IO performance sample. Latencies are reported in
// microseconds per operation.
type Monitor struct {
	Time           string  `json:"time"`
	WritesPerSec   float64 `json:"writes_per_sec"`
	ReadsPerSec    float64 `json:"reads_per_sec"`
	InputPerSec    float64 `json:"input_per_sec"`
	OutputPerSec   float64 `json:"output_per_sec"`
	UsecPerWriteOp float64 `json:"usec_per_write_op"`
	UsecPerReadOp  float64 `json:"usec_per_read_op"`
	QueueDepth     float64 `json:"queue_depth"`
}

// GET /api/1.x/array?space=true

// Space is the array-wide capacity snapshot, all sizes in bytes.
type Space struct {
	Hostname       string  `json:"hostname"`
	Volumes        float64 `json:"volumes"`
	Snapshots      float64 `json:"snapshots"`
	SharedSpace    float64 `json:"shared_space"`
	System         float64 `json:"system"`
	Total          float64 `json:"total"`
	Capacity       float64 `json:"capacity"`
	DataReduction  float64 `json:"data_reduction"`
	TotalReduction float64 `json:"total_reduction"`
	ThinProvision  float64 `json:"thin_provisioning"`
}

// GetMonitor fetches the current IO performance snapshot. The array returns
// a list of samples, the first entry is the most recent one.
func (c *Client) GetMonitor(ctx context.Context) (*Monitor, error) {
	var samples []Monitor
	if err := c.get(ctx, "/array?action=monitor", &samples); err != nil {
		return nil, fmt.Errorf("performance metrics query failed - %v", err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("performance metrics query failed - array returned no samples")
	}
	return &samples[0], nil
}

// GetSpace fetches the array-wide space and capacity snapshot.
func (c *Client) GetSpace(ctx context.Context) (*Space, error) {
	var space Space
	if err := c.get(ctx, "/array?space=true", &space); err != nil {
		return nil, fmt.Errorf("space metrics query failed - %v", err)
	}
	return &space, nil
}
