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

// GET /api/1.x/hardware

// Component statuses reported by the array. Anything outside these two is a
// fault state (degraded, critical, identifying, ...).
const (
	StatusOK           = "ok"
	StatusNotInstalled = "not_installed"
)

// Hardware is one physical component row, fans, power supplies, controllers,
// drive bays and the like.
type Hardware struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	Index       int    `json:"index"`
	Slot        *int   `json:"slot"`
	Speed       *int64 `json:"speed"`
	Temperature *int   `json:"temperature"`
	Details     string `json:"details"`
	Identify    string `json:"identify"`
	Model       string `json:"model"`
	Serial      string `json:"serial"`
}

// ListHardware returns the status of every physical component in the array.
func (c *Client) ListHardware(ctx context.Context) ([]Hardware, error) {
	var components []Hardware
	if err := c.get(ctx, "/hardware", &components); err != nil {
		return nil, fmt.Errorf("hardware status query failed - %v", err)
	}
	return components, nil
}
