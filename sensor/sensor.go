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

// Package sensor runs one collection cycle against an array and turns the
// results into a PRTG sensor document.
package sensor

import (
	"context"

	"github.com/debold/PRTG-PureStorage/config"
	"github.com/debold/PRTG-PureStorage/flasharray"
	"github.com/debold/PRTG-PureStorage/prtg"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ArrayClient is the slice of the flasharray client the sensor consumes.
type ArrayClient interface {
	Login(ctx context.Context, apiToken string) error
	Logout(ctx context.Context) error
	ListHardware(ctx context.Context) ([]flasharray.Hardware, error)
	GetMonitor(ctx context.Context) (*flasharray.Monitor, error)
	GetSpace(ctx context.Context) (*flasharray.Space, error)
}

// Run performs one full sensor cycle: authenticate, collect the three metric
// categories, aggregate into channels. The three reads are independent and
// run concurrently, the first failure cancels the others and is the error
// reported. No partial documents are ever produced.
func Run(ctx context.Context, cfg config.Config, array ArrayClient) (*prtg.Sensor, error) {
	log := zap.L()

	if err := array.Login(ctx, cfg.APIToken); err != nil {
		return nil, err
	}
	defer func() {
		if err := array.Logout(context.WithoutCancel(ctx)); err != nil {
			log.Warn("error closing array session", zap.Error(err))
		}
	}()

	var (
		hardware []flasharray.Hardware
		monitor  *flasharray.Monitor
		space    *flasharray.Space
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		hardware, err = array.ListHardware(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		monitor, err = array.GetMonitor(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		space, err = array.GetSpace(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug("collected array metrics",
		zap.Int("hardware_components", len(hardware)),
		zap.Float64("capacity_bytes", space.Capacity))

	summary, err := summarize(hardware, monitor, space)
	if err != nil {
		return nil, err
	}

	return prtg.NewSensor(channels(summary, cfg.Limits)), nil
}
