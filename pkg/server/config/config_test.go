/* Copyright 2025 Orthodox Hymn Authors
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

package config

import (
	"testing"

	"github.com/orthodoxhymn/site/pkg/assert"
	"github.com/pkg/errors"
)

func TestNewDefaults(t *testing.T) {
	c, err := New(Params{AppEnv: "DEVELOPMENT"})
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating config"))
	}

	assert.Equal(t, c.AppEnv, "DEVELOPMENT", "AppEnv mismatch")
	assert.Equal(t, c.Port, "3001", "Port mismatch")
	assert.Equal(t, c.DBPath, DefaultDBPath, "DBPath mismatch")
	assert.Equal(t, c.UploadDir, DefaultUploadDir, "UploadDir mismatch")
	assert.Equal(t, c.MaxUploadBytes, int64(DefaultMaxUploadBytes), "MaxUploadBytes mismatch")
	assert.Equal(t, c.IsProd(), false, "IsProd mismatch")
}

func TestNewValidation(t *testing.T) {
	testCases := []struct {
		name        string
		params      Params
		expectedErr error
	}{
		{
			name:        "invalid web url",
			params:      Params{AppEnv: "DEVELOPMENT", WebURL: "not a url"},
			expectedErr: ErrWebURLInvalid,
		},
		{
			name:        "production without jwt secret",
			params:      Params{AppEnv: AppEnvProduction},
			expectedErr: ErrJWTSecretMissing,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.params)
			assert.Equal(t, errors.Cause(err), tc.expectedErr, "error mismatch")
		})
	}
}

func TestNewProdWithSecret(t *testing.T) {
	c, err := New(Params{AppEnv: AppEnvProduction, JWTSecret: "s3cret"})
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating config"))
	}

	assert.Equal(t, c.IsProd(), true, "IsProd mismatch")
	assert.Equal(t, c.JWTSecret, "s3cret", "JWTSecret mismatch")
}
