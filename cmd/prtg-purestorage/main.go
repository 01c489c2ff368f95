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

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/debold/PRTG-PureStorage/buildinfo"
	"github.com/debold/PRTG-PureStorage/config"
	"github.com/debold/PRTG-PureStorage/flasharray"
	"github.com/debold/PRTG-PureStorage/logger"
	"github.com/debold/PRTG-PureStorage/prtg"
	"github.com/debold/PRTG-PureStorage/sensor"
	fa_vault "github.com/debold/PRTG-PureStorage/vault"
	"go.uber.org/zap"

	"github.com/nrednav/cuid2"
	"gopkg.in/alecthomas/kingpin.v2"
)

const app = "prtg-purestorage"

var (
	a                  = kingpin.New(app, "PRTG custom sensor for Pure Storage FlashArray health, capacity and IO performance")
	host               = a.Flag("host", "FlashArray management hostname or IP").Default("").Envar("FA_HOST").String()
	apiToken           = a.Flag("token", "FlashArray API token").Default("").Envar("FA_API_TOKEN").String()
	scheme             = a.Flag("scheme", "scheme to use when the host carries no prefix").Default("https").Envar("FA_SCHEME").String()
	timeout            = a.Flag("timeout", "array API call timeout").Default("30s").Envar("FA_TIMEOUT").Duration()
	insecureSkipVerify = a.Flag("insecure-skip-verify", "Skip TLS verification for self-signed array certificates").Default("false").Envar("INSECURE_SKIP_VERIFY").Bool()
	limitsFile         = a.Flag("limits-file", "YAML file overriding channel limit thresholds and messages").Default("").Envar("LIMITS_FILE").String()
	logLevel           = a.Flag("log.level", "log level verbosity").PlaceHolder("[debug|info|warn|error]").Default("info").Envar("LOG_LEVEL").String()
	logMethod          = a.Flag("log.method", "alternative method for logging in addition to stderr").PlaceHolder("[file]").Default("").Envar("LOG_METHOD").String()
	logFilePath        = a.Flag("log.file-path", "directory path where log files are written if log-method is file").Default("/var/log/prtg-purestorage").Envar("LOG_FILE_PATH").String()
	logFileMaxSize     = a.Flag("log.file-max-size", "max file size in megabytes if log-method is file").Default("256").Envar("LOG_FILE_MAX_SIZE").Int()
	logFileMaxBackups  = a.Flag("log.file-max-backups", "max file backups before they are rotated if log-method is file").Default("1").Envar("LOG_FILE_MAX_BACKUPS").Int()
	logFileMaxAge      = a.Flag("log.file-max-age", "max file age in days before they are rotated if log-method is file").Default("1").Envar("LOG_FILE_MAX_AGE").Int()
	vaultAddr          = a.Flag("vault.addr", "Vault instance address to get the array API token from").Default("https://vault.com").Envar("VAULT_ADDRESS").String()
	vaultRoleId        = a.Flag("vault.role-id", "Vault Role ID for AppRole").Default("").Envar("VAULT_ROLE_ID").String()
	vaultSecretId      = a.Flag("vault.secret-id", "Vault Secret ID for AppRole").Default("").Envar("VAULT_SECRET_ID").String()
	vaultMount         = a.Flag("vault.mount", "Vault KV mount path holding the API token").Default("kv2").Envar("VAULT_MOUNT").String()
	vaultPath          = a.Flag("vault.path", "path to the secret holding the API token").Default("").Envar("VAULT_PATH").String()
	vaultTokenField    = a.Flag("vault.token-field", "field inside the secret holding the API token").Default("api_token").Envar("VAULT_TOKEN_FIELD").String()
	showVersion        = a.Flag("version", "print build information to stderr and exit").Default("false").Bool()
)

func main() {
	ctx := context.Background()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = ""
	}

	a.HelpFlag.Short('h')

	_, err = a.Parse(os.Args[1:])
	if err != nil {
		// no logger yet, but PRTG still expects a parseable document
		prtg.Emit(os.Stdout, prtg.NewError("error parsing argument flags - %s", err.Error()))
		return
	}

	if *showVersion {
		buildinfo.Print(os.Stderr)
		return
	}

	// validate logFilePath exists and is a directory
	if *logMethod == "file" {
		fd, err := os.Stat(*logFilePath)
		if os.IsNotExist(err) {
			prtg.Emit(os.Stdout, prtg.NewError("log file path %s does not exist", *logFilePath))
			return
		}
		if !fd.IsDir() {
			prtg.Emit(os.Stdout, prtg.NewError("%s is not a directory", *logFilePath))
			return
		}
	}

	generate, _ := cuid2.Init(
		cuid2.WithLength(32),
	)

	err = logger.Initialize(app, hostname, generate(), logger.LoggerConfig{
		LogLevel:  *logLevel,
		LogMethod: *logMethod,
		LogFile: logger.LogFile{
			Path:       *logFilePath,
			MaxSize:    *logFileMaxSize,
			MaxBackups: *logFileMaxBackups,
			MaxAge:     *logFileMaxAge,
		},
	})
	if err != nil {
		prtg.Emit(os.Stdout, prtg.NewError("error initializing logger - %s", err.Error()))
		return
	}

	log := zap.L()
	defer logger.Flush()

	limits := config.DefaultLimits()
	if *limitsFile != "" {
		limits, err = config.LoadLimits(*limitsFile)
		if err != nil {
			emitError(log, "%s", err.Error())
			return
		}
	}

	// reject a missing host before anything dials out, including the vault
	// lookup below
	if *host == "" {
		emitError(log, "required parameter 'host' is not set")
		return
	}

	// the API token comes from the command line or, failing that, from Vault
	token := *apiToken
	if token == "" && *vaultRoleId != "" && *vaultSecretId != "" {
		vault, err := fa_vault.NewAppRoleClient(fa_vault.Parameters{
			Address:         *vaultAddr,
			ApproleRoleID:   *vaultRoleId,
			ApproleSecretID: *vaultSecretId,
		})
		if err != nil {
			emitError(log, "failed initializing vault client - %s", err.Error())
			return
		}

		token, err = vault.GetAPIToken(ctx, fa_vault.SecretProperties{
			MountPath: *vaultMount,
			Path:      *vaultPath,
			Field:     *vaultTokenField,
		})
		if err != nil {
			emitError(log, "issue retrieving API token from vault - %s", err.Error())
			return
		}
	}

	cfg := config.Config{
		Host:               *host,
		APIToken:           token,
		Scheme:             *scheme,
		Timeout:            *timeout,
		InsecureSkipVerify: *insecureSkipVerify,
		Limits:             limits,
	}

	result, err := collect(ctx, cfg)
	if err != nil {
		emitError(log, "%s", err.Error())
		return
	}

	if err := prtg.Emit(os.Stdout, result); err != nil {
		log.Error("failed writing sensor document", zap.Error(err))
		return
	}

	log.Info("sensor run complete", zap.String("target", cfg.Host))
}

// collect builds the array client and executes one collection cycle. Both
// required inputs are validated first, a run with missing inputs never
// constructs a client or attempts a connection.
func collect(ctx context.Context, cfg config.Config) (*prtg.Sensor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	array, err := flasharray.NewClient(cfg.Host,
		flasharray.WithScheme(cfg.Scheme),
		flasharray.WithTimeout(cfg.Timeout),
		flasharray.WithInsecureSkipVerify(cfg.InsecureSkipVerify),
	)
	if err != nil {
		return nil, fmt.Errorf("failed initializing array client - %v", err)
	}

	return sensor.Run(ctx, cfg, array)
}

// emitError reports a failure the only way PRTG can see it, as an error
// document on stdout. The process still exits zero, the caller inspects the
// document body rather than the exit code.
func emitError(log *zap.Logger, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Error(msg)
	if err := prtg.Emit(os.Stdout, prtg.NewError("%s", msg)); err != nil {
		log.Error("failed writing error document", zap.Error(err))
	}
}
