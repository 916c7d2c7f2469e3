// Copyright 2025 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

package analyzer

import (
	"flag"

	"fillmore-labs.com/lastuse/internal/config"
	"fillmore-labs.com/lastuse/internal/run"
)

// registerFlags binds the [run.Options] values to command line flag values.
func registerFlags(flags *flag.FlagSet, o *run.Options) {
	flags.Var(reportValue(&o.Reports, config.ReportLast), "last", "report last uses of variables")
	flags.Var(reportValue(&o.Reports, config.ReportSpill), "spill", "report variables needing an addressable slot")
	flags.Var(reportValue(&o.Reports, config.ReportCapture), "capture", "report function literals taking variables with their last use")
	flags.Var(behaviorValue(&o.Behavior, config.IncludeGenerated), "generated", "check generated files")
}

func reportValue(flags *config.Reports, value config.ReportFlags) boolValue[config.ReportFlags, *config.Reports] {
	return boolValue[config.ReportFlags, *config.Reports]{flags: flags, value: value}
}

func behaviorValue(flags *config.Behavior, value config.BehaviorFlags) boolValue[config.BehaviorFlags, *config.Behavior] {
	return boolValue[config.BehaviorFlags, *config.Behavior]{flags: flags, value: value}
}
