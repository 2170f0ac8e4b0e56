package engine

import (
	peartube "github.com/ayooooo123/peartube"
)

// Named status codes mirroring libmpv's mpv_error enum. Codes reach callers
// verbatim; the names exist for logs and tests.
const (
	StatusSuccess             peartube.Status = 0
	StatusEventQueueFull      peartube.Status = -1
	StatusNoMem               peartube.Status = -2
	StatusUninitialized       peartube.Status = -3
	StatusInvalidParameter    peartube.Status = -4
	StatusOptionNotFound      peartube.Status = -5
	StatusOptionFormat        peartube.Status = -6
	StatusOptionError         peartube.Status = -7
	StatusPropertyNotFound    peartube.Status = -8
	StatusPropertyFormat      peartube.Status = -9
	StatusPropertyUnavailable peartube.Status = -10
	StatusPropertyError       peartube.Status = -11
	StatusCommand             peartube.Status = -12
	StatusLoadingFailed       peartube.Status = -13
	StatusAOInitFailed        peartube.Status = -14
	StatusVOInitFailed        peartube.Status = -15
	StatusNothingToPlay       peartube.Status = -16
	StatusUnknownFormat       peartube.Status = -17
	StatusUnsupported         peartube.Status = -18
	StatusNotImplemented      peartube.Status = -19
	StatusGeneric             peartube.Status = -20
)

var statusNames = map[peartube.Status]string{
	StatusSuccess:             "success",
	StatusEventQueueFull:      "event queue full",
	StatusNoMem:               "memory allocation failed",
	StatusUninitialized:       "core not initialized",
	StatusInvalidParameter:    "invalid parameter",
	StatusOptionNotFound:      "option not found",
	StatusOptionFormat:        "unsupported format for accessing option",
	StatusOptionError:         "error setting option",
	StatusPropertyNotFound:    "property not found",
	StatusPropertyFormat:      "unsupported format for accessing property",
	StatusPropertyUnavailable: "property unavailable",
	StatusPropertyError:       "error accessing property",
	StatusCommand:             "error running command",
	StatusLoadingFailed:       "loading failed",
	StatusAOInitFailed:        "audio output initialization failed",
	StatusVOInitFailed:        "video output initialization failed",
	StatusNothingToPlay:       "no audio or video data played",
	StatusUnknownFormat:       "unrecognized file format",
	StatusUnsupported:         "not supported",
	StatusNotImplemented:      "operation not implemented",
	StatusGeneric:             "something happened",
}

// StatusName returns libmpv's description for a status code. Positive codes
// and codes from future libmpv versions report as "unknown".
func StatusName(s peartube.Status) string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}
