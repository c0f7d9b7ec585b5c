package s3g

import (
	"io"
	"sync"
	"time"

	"github.com/albenik/go-serial/v2"
)

const (
	defaultReadTimeout = 30 * time.Millisecond
	defaultBaudrate    = 57600
)

// Port is what Controller needs from a transport: write the framed
// request, pull received bytes off a background-fed buffer, and pulse a
// hardware reset when a handshake stalls.
type Port interface {
	Open() error
	Write(p []byte) (int, error)
	ReadByte() (byte, bool)
	Available() int
	Clear()
	PulseResetLow() error
	Close() error
}

// SerialPort is a Port backed by an OS serial device. A background
// goroutine drains the OS read side into a recvBuffer as soon as bytes
// arrive; Controller's request/response exchange never blocks on the OS
// read call directly, so a command's own timeout logic stays independent
// of how the port driver implements its read deadline.
type SerialPort struct {
	Dev      string
	Baudrate int
	Parity   Parity

	mu        sync.Mutex
	port      io.ReadWriteCloser
	rx        *recvBuffer
	stopCh    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// ListPorts enumerates the names of serial devices visible to the OS.
func ListPorts() ([]string, error) {
	return serial.GetPortsList()
}

// Open opens the OS device and starts the background reader. It fails
// with ErrPortNotFound if Dev is not among the enumerated ports.
func (p *SerialPort) Open() error {
	if p.Dev == "" {
		panic("empty SerialPort.Dev")
	}
	if p.Baudrate <= 0 {
		p.Baudrate = defaultBaudrate
	}

	names, err := ListPorts()
	if err == nil {
		found := false
		for _, n := range names {
			if n == p.Dev {
				found = true
				break
			}
		}
		if !found {
			return OpenErr{p.Dev, ErrPortNotFound}
		}
	}

	logf("opening %s", p.Dev)
	port, err := serial.Open(p.Dev,
		serial.WithBaudrate(p.Baudrate),
		serial.WithParity(serial.Parity(p.Parity)),
		serial.WithReadTimeout(int(defaultReadTimeout.Milliseconds())),
		serial.WithWriteTimeout(int(defaultReadTimeout.Milliseconds())))
	if err != nil {
		return OpenErr{p.Dev, err}
	}
	logf("%s opened", p.Dev)

	p.mu.Lock()
	p.port = port
	p.rx = newRecvBuffer()
	p.stopCh = make(chan struct{})
	p.done = make(chan struct{})
	p.closeOnce = sync.Once{}
	p.mu.Unlock()
	go p.readLoop()
	return nil
}

func (p *SerialPort) readLoop() {
	defer close(p.done)
	buf := make([]byte, 256)
	for {
		select {
		case <-p.stopCh:
			return
		default:
		}
		n, err := p.port.Read(buf)
		if n > 0 {
			p.rx.write(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

// currentPort returns the live OS port, or nil once Close has run.
func (p *SerialPort) currentPort() io.ReadWriteCloser {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.port
}

func (p *SerialPort) Write(b []byte) (int, error) {
	port := p.currentPort()
	if port == nil {
		return 0, ErrPortClosed
	}
	return port.Write(b)
}

func (p *SerialPort) ReadByte() (byte, bool) {
	return p.rx.readByte()
}

func (p *SerialPort) Available() int {
	return p.rx.available()
}

func (p *SerialPort) Clear() {
	p.rx.clear()
}

// PulseResetLow toggles DTR low then high, matching the reset line wired
// to the board's reset pin on a handshake stall.
func (p *SerialPort) PulseResetLow() error {
	sp, ok := p.currentPort().(*serial.Port)
	if !ok {
		return nil
	}
	if err := sp.SetDTR(false); err != nil {
		return err
	}
	time.Sleep(100 * time.Millisecond)
	return sp.SetDTR(true)
}

// Close stops the background reader and closes the OS device. It is safe
// to call more than once; only the first call does anything. It blocks
// until readLoop has actually returned, so the OS handle is never closed
// (or nilled) while a read against it may still be in flight.
func (p *SerialPort) Close() error {
	var err error
	p.closeOnce.Do(func() {
		if p.stopCh != nil {
			close(p.stopCh)
		}

		port := p.currentPort()
		if port == nil {
			return
		}

		err = port.Close()
		if p.done != nil {
			<-p.done
		}

		p.mu.Lock()
		p.port = nil
		p.mu.Unlock()
	})
	return err
}
