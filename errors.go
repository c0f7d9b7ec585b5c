package s3g

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when a read exceeds the configured timeout.
	ErrTimeout = errors.New("s3g: timeout")
	// ErrPortNotFound is returned when the configured port name is not
	// among the enumerated serial devices.
	ErrPortNotFound = errors.New("s3g: port not found")
	// ErrPortInUse names a device that is already held open elsewhere.
	// SerialPort.Open does not return it: a busy device surfaces as an
	// OpenErr wrapping the serial library's own open error.
	ErrPortInUse = errors.New("s3g: port in use")
	// ErrPortClosed is returned by operations attempted on a SerialPort
	// after Close has run.
	ErrPortClosed = errors.New("s3g: port closed")

	errNullVersion = errors.New("s3g: device reported null version")
)

// OpenErr wraps a serial open failure with the device name, matching the
// teacher's OpenErr shape.
type OpenErr struct {
	Dev string
	Err error
}

func (e OpenErr) Error() string {
	return e.Err.Error() + " while opening " + e.Dev
}

func (e OpenErr) Unwrap() error {
	return e.Err
}

// FramingError reports a decoder-level framing problem other than a CRC
// mismatch, such as a CRC-valid frame whose payload is too short to carry
// even a response code.
type FramingError struct {
	Reason string
}

func (e FramingError) Error() string {
	return "s3g: framing error: " + e.Reason
}

// CrcMismatchError reports a packet whose trailing CRC byte did not match
// the payload, whether produced by the decoder (wire corruption) or
// reported by the device itself (response code CRC_MISMATCH).
type CrcMismatchError struct {
	Data []byte
}

func (e CrcMismatchError) Error() string {
	return fmt.Sprintf("s3g: crc mismatch: [% X]", e.Data)
}

// BadFirmwareVersionError reports a connected device whose firmware is
// older than the configured minimum.
type BadFirmwareVersionError struct {
	Got Version
	Min Version
}

func (e BadFirmwareVersionError) Error() string {
	return fmt.Sprintf("s3g: firmware version %s is below minimum %s", e.Got, e.Min)
}

// UnsupportedError reports a device reply of UNSUPPORTED for a command.
type UnsupportedError struct{}

func (e UnsupportedError) Error() string {
	return "s3g: command unsupported by device"
}

// DeviceError reports a GENERIC_ERROR reply, or any response code the
// driver does not otherwise recognize.
type DeviceError struct {
	Code ResponseCode
}

func (e DeviceError) Error() string {
	return fmt.Sprintf("s3g: device error: %s", e.Code)
}
