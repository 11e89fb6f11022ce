// SPDX-License-Identifier: EPL-2.0

// Package utils holds the sample level helpers shared by the float pipeline
// and the software backend: PCM sample conversion and Catmull-Rom
// interpolation.
package utils
