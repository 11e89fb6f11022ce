// SPDX-License-Identifier: EPL-2.0

// Package soft is a pure Go implementation of the al backend contract.
//
// It keeps buffer and source handle tables per context, runs the OpenAL
// source state machine (Initial, Playing, Paused, Stopped) and renders every
// playing source of every live context into one stereo stream:
//
//	drv := soft.NewDriver(soft.WithSampleRate(48000))
//	dev, _ := drv.Open("")
//	ctx, _ := dev.CreateContext()
//	_ = drv.MakeContextCurrent(ctx)
//
//	// hand dev (an io.Reader of S16LE stereo) to an output sink
//
// # Rendering
//
// Each playing source advances through its buffer by
// pitch * bufferRate / deviceRate frames per output frame, using Catmull-Rom
// interpolation between frames. Mono buffers are spatialized against a single
// listener at the origin: the gain follows the inverse distance clamped model
// (rolloff 1) between the reference and max distance, and the x coordinate
// drives an equal-power pan. Stereo, quad and 5.1 buffers are downmixed to
// stereo and are not spatialized.
//
// # Errors
//
// As with OpenAL, the first failing call latches an al.ErrorCode which
// GetError returns and clears. Calls on a destroyed context latch
// al.InvalidOperation.
package soft
