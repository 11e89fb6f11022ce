// SPDX-License-Identifier: EPL-2.0

package al

import "fmt"

// ErrorCode is the value latched by a failing backend call.
type ErrorCode int32

const (
	NoError          ErrorCode = 0
	InvalidName      ErrorCode = 0xA001
	InvalidEnum      ErrorCode = 0xA002
	InvalidValue     ErrorCode = 0xA003
	InvalidOperation ErrorCode = 0xA004
	OutOfMemory      ErrorCode = 0xA005
)

var errorStrings = map[ErrorCode]string{
	NoError:          "No Error",
	InvalidName:      "Invalid Name",
	InvalidEnum:      "Invalid Enum",
	InvalidValue:     "Invalid Value",
	InvalidOperation: "Invalid Operation",
	OutOfMemory:      "Out of Memory",
}

// ErrorString returns the standard description of code, or "" for codes
// outside the standard set. Backends may use it for Context.ErrorString.
func ErrorString(code ErrorCode) string {
	return errorStrings[code]
}

func (c ErrorCode) String() string {
	if s, ok := errorStrings[c]; ok {
		return s
	}
	return fmt.Sprintf("ErrorCode(0x%X)", int32(c))
}
