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
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/debold/PRTG-PureStorage/config"
	"github.com/debold/PRTG-PureStorage/flasharray"
	"github.com/stretchr/testify/assert"
)

type fakeArray struct {
	loginErr    error
	logoutCalls int32
	collects    int32

	hardware    []flasharray.Hardware
	hardwareErr error
	monitor     *flasharray.Monitor
	monitorErr  error
	space       *flasharray.Space
	spaceErr    error
}

func (f *fakeArray) Login(ctx context.Context, apiToken string) error {
	return f.loginErr
}

func (f *fakeArray) Logout(ctx context.Context) error {
	atomic.AddInt32(&f.logoutCalls, 1)
	return nil
}

func (f *fakeArray) ListHardware(ctx context.Context) ([]flasharray.Hardware, error) {
	atomic.AddInt32(&f.collects, 1)
	return f.hardware, f.hardwareErr
}

func (f *fakeArray) GetMonitor(ctx context.Context) (*flasharray.Monitor, error) {
	atomic.AddInt32(&f.collects, 1)
	return f.monitor, f.monitorErr
}

func (f *fakeArray) GetSpace(ctx context.Context) (*flasharray.Space, error) {
	atomic.AddInt32(&f.collects, 1)
	return f.space, f.spaceErr
}

func healthyArray() *fakeArray {
	return &fakeArray{
		hardware: hardwareWithStatuses("ok", "ok", "not_installed", "failed"),
		monitor:  testMonitor(),
		space:    testSpace(),
	}
}

func testConfig() config.Config {
	return config.Config{
		Host:     "array01.example.com",
		APIToken: "token",
		Limits:   config.DefaultLimits(),
	}
}

func TestRunSuccess(t *testing.T) {
	array := healthyArray()

	result, err := Run(context.Background(), testConfig(), array)
	assert.Nil(t, err)
	assert.NotNil(t, result)

	assert.Len(t, result.Prtg.Channels, 12)
	assert.Equal(t, "Hardware ok count", result.Prtg.Channels[0].Channel)
	assert.Equal(t, 2, result.Prtg.Channels[0].Value)
	assert.Equal(t, 6.0, result.Prtg.Channels[6].Value)
	assert.Equal(t, 60.0, result.Prtg.Channels[7].Value)

	// the session is torn down even on the happy path
	assert.Equal(t, int32(1), array.logoutCalls)
}

func TestRunLoginFailure(t *testing.T) {
	array := healthyArray()
	array.loginErr = errors.New("array authentication failed - HTTP status 400 - invalid credentials")

	result, err := Run(context.Background(), testConfig(), array)
	assert.Nil(t, result)
	assert.NotNil(t, err)
	// the underlying failure text must survive to the error document
	assert.Contains(t, err.Error(), "invalid credentials")

	// no collection and no logout without a session
	assert.Equal(t, int32(0), array.collects)
	assert.Equal(t, int32(0), array.logoutCalls)
}

func TestRunCollectorFailureAborts(t *testing.T) {
	array := healthyArray()
	array.hardwareErr = errors.New("hardware status query failed - HTTP status 500")

	result, err := Run(context.Background(), testConfig(), array)
	assert.Nil(t, result)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "hardware status query failed")
	assert.Equal(t, int32(1), array.logoutCalls)
}

func TestRunNamesFailedMetricCategory(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fakeArray)
		want  string
	}{
		{
			name:  "performance",
			setup: func(f *fakeArray) { f.monitorErr = errors.New("performance metrics query failed - HTTP status 503") },
			want:  "performance metrics query failed",
		},
		{
			name:  "space",
			setup: func(f *fakeArray) { f.spaceErr = errors.New("space metrics query failed - HTTP status 503") },
			want:  "space metrics query failed",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			array := healthyArray()
			test.setup(array)

			result, err := Run(context.Background(), testConfig(), array)
			assert.Nil(t, result)
			assert.NotNil(t, err)
			assert.Contains(t, err.Error(), test.want)
		})
	}
}

func TestRunZeroCapacityIsError(t *testing.T) {
	array := healthyArray()
	array.space = &flasharray.Space{Capacity: 0}

	result, err := Run(context.Background(), testConfig(), array)
	assert.Nil(t, result)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "zero total capacity")
}
