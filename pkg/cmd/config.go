// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"os"
	"strings"

	"github.com/consensys/go-vams/pkg/vams/compiler"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Construct the configuration for elaboration from the command-line flags.  A
// configuration file (if given) is read first, and then the remaining flags
// are applied on top.
func getConfig(cmd *cobra.Command) (compiler.Config, error) {
	var config = compiler.DefaultConfig()
	//
	if filename := GetString(cmd, "config"); filename != "" {
		var err error
		//
		if config, err = readConfig(filename); err != nil {
			return config, err
		}
	}
	//
	if GetFlag(cmd, "no-simplify") {
		config.Simplify = false
	}
	//
	if n := GetUint(cmd, "max-iterations"); n != 0 {
		config.MaxIterations = n
	}
	//
	for _, def := range GetStringArray(cmd, "define") {
		split := strings.SplitN(def, "=", 2)
		//
		if len(split) != 2 || split[0] == "" {
			return config, errors.Errorf("malformed definition \"%s\"", def)
		}
		//
		log.Debugf("overriding parameter %s with %s", split[0], split[1])
		config.Parameters[split[0]] = split[1]
	}
	//
	return config, config.Validate()
}

// Read a configuration from a YAML file.  Settings missing from the file take
// their default values.
func readConfig(filename string) (compiler.Config, error) {
	var config = compiler.DefaultConfig()
	//
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	//
	if err = yaml.Unmarshal(bytes, &config); err != nil {
		return config, errors.Wrapf(err, "reading %s", filename)
	}
	// An empty mapping in the file leaves these nil.
	if config.Parameters == nil {
		config.Parameters = make(map[string]string)
	}
	//
	if config.AccessFunctions == nil {
		config.AccessFunctions = make(map[string]string)
	}
	//
	return config, nil
}
