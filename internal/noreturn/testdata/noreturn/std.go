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
	"log"
	"os"
	"runtime"
	"syscall"
	"testing"
)

func logFatal() {
	log.Fatal() // want "does not return"
}

func builtinPanic() {
	panic("") // want "does not return"
}

func loggerFatal() {
	l := log.Default()

	l.Fatalf("")  // want "does not return"
	l.Fatalln("") // want "does not return"
}

func exits() {
	os.Exit(1)       // want "does not return"
	syscall.Exit(1)  // want "does not return"
	runtime.Goexit() // want "does not return"
}

func testHelpers(t *testing.T, tb testing.TB) {
	t.Fatal()     // want "does not return"
	t.SkipNow()   // want "does not return"
	tb.Fatalf("") // want "does not return"
	tb.Error()    // OK
}

func methodValue() {
	fatal := log.Fatal

	fatal("") // OK
}

func normalReturn() {
	println("hello") // OK
	_ = int64(1)     // OK
}

func shadowed() {
	panic := func(string) {}

	panic("") // OK
}
