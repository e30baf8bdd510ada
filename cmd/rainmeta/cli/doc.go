// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command tree framework for the rainmeta
// binary: command dispatch, flag parsing with typo suggestions, and
// structured help output.
package cli
