// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gfx draws into a RGB565 framebuffer without floating point.
//
// Circular shapes, arcs and rotating gradients take their sine and cosine
// from a gfxmath.Tables value, which the caller builds once and shares.
//
// Graphics and Gradients assume exclusive access to the framebuffer for the
// duration of each call. Callers serialize concurrent writers themselves.
package gfx
