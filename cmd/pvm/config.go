// This file is part of calcpvm - https://github.com/g19m7057/calcpvm
//
// Copyright 2026 The calcpvm Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const defaultConfig = "pvm.toml"

type config struct {
	Run struct {
		Trace      bool   `toml:"trace"`
		TraceStack bool   `toml:"trace_stack"`
		Data       string `toml:"data"`
		Results    string `toml:"results"`
	} `toml:"run"`
	Listing struct {
		Enabled bool `toml:"enabled"`
	} `toml:"listing"`
	Log struct {
		Verbosity int `toml:"verbosity"`
	} `toml:"log"`
}

// loadConfig reads the configuration file at path. A missing file is not an
// error unless it was named explicitly.
func loadConfig(path string, explicit bool) (*config, error) {
	var c config
	if path == "" {
		path = defaultConfig
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &c, nil
		}
		return nil, errors.Wrap(err, "config")
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return &c, nil
}
