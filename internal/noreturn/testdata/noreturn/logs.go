// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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

package noreturn

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"k8s.io/klog"
	klog2 "k8s.io/klog/v2"
)

func zapLog() {
	log := zap.NewNop()

	log.Fatal("") // want "does not return"
	log.Panic("") // want "does not return"

	sugaredlog := log.Sugar()

	sugaredlog.Fatal()    // want "does not return"
	sugaredlog.Fatalf("") // want "does not return"
	sugaredlog.Fatalln()  // want "does not return"
	sugaredlog.Fatalw("") // want "does not return"
	sugaredlog.Panic()    // want "does not return"
	sugaredlog.Panicf("") // want "does not return"
	sugaredlog.Panicln()  // want "does not return"
	sugaredlog.Panicw("") // want "does not return"
}

func logrusLog() {
	log := logrus.New()

	log.Exit(1)    // want "does not return"
	log.Panic()    // want "does not return"
	log.Panicf("") // want "does not return"
	log.Panicln()  // want "does not return"

	entry := logrus.NewEntry(log)

	entry.Panic()    // want "does not return"
	entry.Panicf("") // want "does not return"
	entry.Panicln()  // want "does not return"
}

func kLog() {
	klog.Exit()        // want "does not return"
	klog.ExitDepth(0)  // want "does not return"
	klog.Exitf("")     // want "does not return"
	klog.Exitln()      // want "does not return"
	klog.Fatal()       // want "does not return"
	klog.FatalDepth(0) // want "does not return"
	klog.Fatalf("")    // want "does not return"
	klog.Fatalln()     // want "does not return"

	klog2.Exit()        // want "does not return"
	klog2.ExitDepth(0)  // want "does not return"
	klog2.Exitf("")     // want "does not return"
	klog2.Exitln()      // want "does not return"
	klog2.Fatal()       // want "does not return"
	klog2.FatalDepth(0) // want "does not return"
	klog2.Fatalf("")    // want "does not return"
	klog2.Fatalln()     // want "does not return"
}
