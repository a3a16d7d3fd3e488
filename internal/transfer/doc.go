// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package transfer downloads configured files with go-getter and exposes each download as a
// task.Handle, reporting byte progress as it goes.
package transfer
