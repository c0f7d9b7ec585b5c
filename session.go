package s3g

import (
	"time"
)

// sessionState is the driver's connection lifecycle, following the
// startup handshake through to a state that accepts commands.
type sessionState int

const (
	Disconnected sessionState = iota
	WaitingForStartup
	Ready
	Disposed
)

const (
	defaultHandshakeTimeout = 8000 * time.Millisecond
	defaultResetSleep       = 3000 * time.Millisecond
	defaultPortOpenRetry    = 500 * time.Millisecond
)

// DefaultMinFirmwareVersion is the lowest firmware version this driver
// will talk to.
var DefaultMinFirmwareVersion = Version{Major: 1, Minor: 1}

// Session owns a Master's connection from power-on through handshake to
// steady-state command issuing.
type Session struct {
	Port Port

	HostProtocolVersion uint16
	MinFirmwareVersion  Version
	HandshakeTimeout    time.Duration
	// ResetSleep is how long to wait after a reset pulse before retrying
	// the handshake; a device-firmware characteristic, default 3s.
	ResetSleep time.Duration
	// PortOpenRetry is how often to retry opening the port until it
	// succeeds, default 500ms.
	PortOpenRetry time.Duration

	Master *Master

	state   sessionState
	Version Version
}

// NewSession builds a Session around a Port, with spec-documented
// defaults for minimum firmware version and handshake timeout.
func NewSession(port Port) *Session {
	return &Session{
		Port:               port,
		MinFirmwareVersion: DefaultMinFirmwareVersion,
		HandshakeTimeout:   defaultHandshakeTimeout,
		ResetSleep:         defaultResetSleep,
		PortOpenRetry:      defaultPortOpenRetry,
		state:              Disconnected,
	}
}

// State reports the session's current lifecycle state.
func (s *Session) State() sessionState {
	return s.state
}

// Open retries the port open every 500ms until it succeeds, then runs the
// startup handshake.
func (s *Session) Open() error {
	if s.PortOpenRetry <= 0 {
		s.PortOpenRetry = defaultPortOpenRetry
	}
	for {
		if err := s.Port.Open(); err == nil {
			break
		}
		time.Sleep(s.PortOpenRetry)
	}

	s.Master = &Master{Controller: &Controller{Port: s.Port, Timeout: s.HandshakeTimeout}}
	return s.waitForStartup()
}

// waitForStartup repeatedly issues VERSION until a non-zero reply comes
// back, pulsing a hardware reset and retrying after each full timeout.
// Once initialized it validates the firmware version and sends INIT.
func (s *Session) waitForStartup() error {
	s.state = WaitingForStartup
	s.Master.Controller.Timeout = s.HandshakeTimeout
	if s.ResetSleep <= 0 {
		s.ResetSleep = defaultResetSleep
	}

	for {
		v, err := s.Master.Version(s.HostProtocolVersion)
		if err == nil {
			s.Version = v
			break
		}
		if err != ErrTimeout && err != errNullVersion {
			return err
		}

		logf("no response from device, pulsing reset")
		if err := s.Port.PulseResetLow(); err != nil {
			return err
		}
		time.Sleep(s.ResetSleep)

		var drained []byte
		for {
			b, ok := s.Port.ReadByte()
			if !ok {
				break
			}
			drained = append(drained, b)
		}
		if len(drained) > 0 {
			logf("draining %d boot bytes: % X", len(drained), drained)
		}
		s.Port.Clear()
	}

	// a timeout of 0 means "no timeout" per the transport's read loop
	s.Master.Controller.Timeout = 0

	if s.Version.Compare(s.MinFirmwareVersion) < 0 {
		return BadFirmwareVersionError{Got: s.Version, Min: s.MinFirmwareVersion}
	}

	if err := s.Master.Init(); err != nil {
		return err
	}
	s.state = Ready
	return nil
}

// Close disposes of the session's port, closing input, then output, then
// the port itself as a single Close call on the underlying Port.
func (s *Session) Close() error {
	s.state = Disposed
	return s.Port.Close()
}
