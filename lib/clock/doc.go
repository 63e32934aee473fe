// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts the wall clock so that task timestamps,
// seeded due dates, and relative dates spoken into the voice parser
// ("tomorrow", "next friday") can be tested against a fixed instant.
//
// Production code takes a Clock and is handed Real(). Tests hand it
// Fake(instant) and move time with Advance or Set.
package clock
