// SPDX-License-Identifier: EPL-2.0

package mpeg

import "errors"

var (
	ErrNotSync     = errors.New("invalid sync bits in header")
	ErrReserved    = errors.New("reserved MPEG version, layer, bitrate, or samplerate")
	ErrFreeFormat  = errors.New("free format frames are not supported")
	ErrBufferLimit = errors.New("scan buffer reached maximum size")
	ErrShortHeader = errors.New("not enough data for a frame header")
)
