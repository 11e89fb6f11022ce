// SPDX-License-Identifier: EPL-2.0

// Package output plays a rendered mix on an audio device.
//
// A Sink pulls signed 16-bit little-endian PCM from an io.Reader, such as a
// *soft.Device, whenever the device needs more frames:
//
//	dev, _ := drv.Open("")
//	sink := output.NewOto(log)
//	if err := sink.Start(dev, output.Format{SampleRate: dev.SampleRate(), Channels: 2}); err != nil {
//	    return err
//	}
//	defer sink.Close()
//
// Oto uses github.com/ebitengine/oto/v3, Malgo uses miniaudio through
// github.com/gen2brain/malgo, and Null paces reads in real time without any
// device, which is useful headless.
package output
