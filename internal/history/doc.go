// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package history keeps a journal of finished downloads as a stream of YAML documents.
package history
