// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config holds the list of files the user can choose to download, together with
// the destination directory and the button captions and colours.
//
// Configuration is read from YAML (.yaml, .yml) or HCL (.hcl) files. A source that is not
// a local file is fetched with go-getter first.
//
// HCL expressions can read environment variables as env.NAME and call lower, upper,
// trimspace and join.
//
// Watch reloads a local file whenever it changes on disk.
package config
