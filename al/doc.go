// SPDX-License-Identifier: EPL-2.0

// Package al defines the device backend contract used by audvox.
//
// The contract is shaped after OpenAL: a Driver opens Devices, a Device
// creates rendering Contexts, and a Context owns buffer and source handles.
// Calls on a Context do not return errors. Like alGetError, a failing call
// latches an ErrorCode that the caller reads (and clears) with GetError:
//
//	b := ctx.GenBuffer()
//	ctx.BufferData(b, al.FormatMono16, pcm, 22050)
//	if code := ctx.GetError(); code != al.NoError {
//	    // ctx.ErrorString(code) describes it
//	}
//
// Unlike OpenAL the context is always passed explicitly. The Driver still
// tracks a "current" context for callers that attach to a context set up
// elsewhere.
//
// The package github.com/ik5/audvox/al/soft provides a pure Go
// implementation.
package al
