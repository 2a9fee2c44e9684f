/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package clock gives the synchronization engine a narrow, testable view
// of time: wall-clock reads, monotonic reads, and two flavors of waiting.
// Production code talks only to the Clock interface, never to time.Now
// or time.Sleep directly, so the whole engine can be driven deterministically
// in tests against a SimulatedClock.
package clock
