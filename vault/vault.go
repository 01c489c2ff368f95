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

// Package vault fetches the array API token from a HashiCorp Vault KV
// secret, for deployments where tokens are not handed to the probe directly.
// One login per run, the sensor process is gone before any lease expires.
package vault

import (
	"context"
	"fmt"

	vault "github.com/hashicorp/vault/api"
	"github.com/hashicorp/vault/api/auth/approle"
)

type Parameters struct {
	// connection and credential parameters
	Address         string
	ApproleRoleID   string
	ApproleSecretID string
	CACertBytes     []byte
}

// SecretProperties locates the API token inside the KV store.
type SecretProperties struct {
	MountPath string
	Path      string
	Field     string
}

type Vault struct {
	client     *vault.Client
	Parameters Parameters
}

// NewAppRoleClient builds a Vault client configured for the AppRole
// authentication method. No network calls are made until GetAPIToken.
func NewAppRoleClient(parameters Parameters) (*Vault, error) {
	config := vault.DefaultConfig()
	config.Address = parameters.Address
	if len(parameters.CACertBytes) > 0 {
		if err := config.ConfigureTLS(&vault.TLSConfig{
			CACertBytes: parameters.CACertBytes,
		}); err != nil {
			return nil, fmt.Errorf("unable to configure TLS: %w", err)
		}
	}

	client, err := vault.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize vault client: %w", err)
	}

	return &Vault{
		client:     client,
		Parameters: parameters,
	}, nil
}

// A combination of a RoleID and a SecretID is required to log into Vault
// with AppRole authentication method.
func (v *Vault) login(ctx context.Context) error {
	approleSecretID := &approle.SecretID{
		FromString: v.Parameters.ApproleSecretID,
	}

	appRoleAuth, err := approle.NewAppRoleAuth(
		v.Parameters.ApproleRoleID,
		approleSecretID,
	)
	if err != nil {
		return fmt.Errorf("unable to initialize approle authentication method: %w", err)
	}

	if _, err := v.client.Auth().Login(ctx, appRoleAuth); err != nil {
		return fmt.Errorf("unable to login using approle auth method: %w", err)
	}

	return nil
}

// GetAPIToken logs in and reads the array API token from the configured
// kv-v1 or kv-v2 secret.
func (v *Vault) GetAPIToken(ctx context.Context, props SecretProperties) (string, error) {
	var kvSecret *vault.KVSecret
	var err error

	if err = v.login(ctx); err != nil {
		return "", err
	}

	if props.MountPath != "kv2" {
		kvSecret, err = v.client.KVv1(props.MountPath).Get(ctx, props.Path)
	} else {
		kvSecret, err = v.client.KVv2(props.MountPath).Get(ctx, props.Path)
	}
	if err != nil {
		return "", fmt.Errorf("unable to read secret: %w", err)
	}

	token, ok := kvSecret.Data[props.Field].(string)
	if !ok || token == "" {
		return "", fmt.Errorf("the secret retrieved from vault at %s/%s is missing the %q field", props.MountPath, props.Path, props.Field)
	}

	return token, nil
}
