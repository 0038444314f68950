// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command paintdemo renders a YAML element scene through the incremental
// paint pipeline and writes every frame as a PNG.
//
//	paintdemo render --scene testdata/scroll.yaml --out frames --frames 8
//
// Flags can also be set in paintdemo.yaml or as PAINT_* environment
// variables, for example PAINT_BACKEND=image.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
