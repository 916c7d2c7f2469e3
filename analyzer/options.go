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
	"log/slog"

	"fillmore-labs.com/lastuse/internal/config"
	"fillmore-labs.com/lastuse/internal/run"
)

// Option configures specific behavior of a [New] lastuse analyzer.
type Option interface {
	apply(r *run.Options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *run.Options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithGenerated is an [Option] to configure diagnostics in generated files.
func WithGenerated(generated bool) Option { return generatedOption{generated: generated} }

type generatedOption struct{ generated bool }

func (o generatedOption) apply(r *run.Options) {
	r.Behavior.Set(config.IncludeGenerated, o.generated)
}

func (o generatedOption) LogAttr() slog.Attr {
	return slog.Bool("generated", o.generated)
}

// WithLastUse is an [Option] to configure whether last uses are reported.
func WithLastUse(last bool) Option { return reportOption{flag: config.ReportLast, key: "last", enabled: last} }

// WithSpill is an [Option] to configure whether variables needing an addressable slot are reported.
func WithSpill(spill bool) Option {
	return reportOption{flag: config.ReportSpill, key: "spill", enabled: spill}
}

// WithCapture is an [Option] to configure whether function literals taking variables with their last use are reported.
func WithCapture(capture bool) Option {
	return reportOption{flag: config.ReportCapture, key: "capture", enabled: capture}
}

type reportOption struct {
	flag    config.ReportFlags
	key     string
	enabled bool
}

func (o reportOption) apply(r *run.Options) {
	r.Reports.Set(o.flag, o.enabled)
}

func (o reportOption) LogAttr() slog.Attr {
	return slog.Bool(o.key, o.enabled)
}
