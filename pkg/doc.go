// Package pkg provides the core libraries of the scrambler.
//
// # Overview
//
// Scrambler cuts every frame of a live video feed into a grid of blocks,
// shuffles the blocks on a timer and optionally jitters their colors. The pkg
// directory is organized into three areas:
//
//  1. [scramble] - Domain logic (partition, permutation, jitter, compose)
//  2. [capture], [display] - The external video processes
//  3. [pipeline] - Orchestration (capture → scramble → display)
//
// # Architecture
//
// The data flow for every frame:
//
//	Camera / video file / test pattern
//	         ↓
//	    [capture] package (ffmpeg, raw rgb24 on a pipe)
//	         ↓
//	    [scramble] package (partition → permute → jitter → compose)
//	         ↓
//	    [display] package (ffplay window)
//
// # Quick Start
//
// Scramble a single frame:
//
//	import (
//	    "github.com/matzehuels/scrambler/pkg/frame"
//	    "github.com/matzehuels/scrambler/pkg/scramble"
//	)
//
//	grid := scramble.NewGridConfig()
//	grid.SetRows(4)
//	s := scramble.New(grid, scramble.WithSeed(42))
//	out, err := s.Process(frame.New(640, 480))
//
// # Main Packages
//
// [frame] - The rgb24 frame type with zero-copy sub-frame views.
//
// [scramble] - Grid configuration, block partitioning, Fisher-Yates
// permutations, per-block color jitter and the [scramble.Scrambler] that
// applies the reshuffle timing policy.
//
// [capture] - Frame sources: ffmpeg reading a camera or a video file, and a
// built-in SMPTE color bar pattern.
//
// [display] - Frame sinks: an ffplay window and a discarding sink.
//
// [pipeline] - The control loop tying a source, a scrambler and a sink.
//
// [config] - TOML configuration with defaults and validation.
//
// [errors] - Structured errors with codes for consistent handling.
//
// [observability] - Hooks for frame and process events.
//
// [metrics] - Prometheus metrics fed by the frame hooks.
//
// [buildinfo] - Version information.
package pkg
