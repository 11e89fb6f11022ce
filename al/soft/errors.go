// SPDX-License-Identifier: EPL-2.0

package soft

import "errors"

var (
	ErrDeviceNotFound   = errors.New("audio device not found")
	ErrDeviceClosed     = errors.New("audio device is closed")
	ErrContextsAlive    = errors.New("device still has live contexts")
	ErrContextCurrent   = errors.New("context is current")
	ErrContextDestroyed = errors.New("context is destroyed")
	ErrForeignContext   = errors.New("context does not belong to this driver")
)
