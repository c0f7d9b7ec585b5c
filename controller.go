package s3g

import (
	"sync"
	"time"

	"github.com/bangzek/clock"
)

const defaultTimeout = time.Second

var ctime = clock.New()

// Controller serializes whole request/response exchanges over a Port. Its
// mutex is distinct from the buffer's internal lock: the background
// reader feeding the buffer never needs to take it, so a slow or stuck
// command never stalls the reader.
//
// Timeout of 0 means no timeout: readResponse busy-waits indefinitely for
// bytes rather than failing, matching a read_one(0) call in the wire
// protocol this mirrors.
type Controller struct {
	Port    Port
	Timeout time.Duration

	mu sync.Mutex
}

// NewController builds a Controller with the package's default timeout.
func NewController(port Port) *Controller {
	return &Controller{Port: port, Timeout: defaultTimeout}
}

// RunCommand sends payload framed as a packet and waits for the device's
// reply. BUFFER_OVERFLOW is retried silently after a short backoff;
// CRC_MISMATCH and every other non-OK response code is returned to the
// caller as an error via Response.Err.
func (c *Controller) RunCommand(payload []byte) (Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pkt := encode(payload)
	for {
		debugf("tx: % X", pkt)
		if _, err := c.Port.Write(pkt); err != nil {
			logf("write error: %s", err)
			return Response{}, err
		}

		resp, err := c.readResponse()
		if err != nil {
			return Response{}, err
		}

		if resp.Code == BufferOverflow {
			debugf("buffer overflow, retrying in 25ms")
			time.Sleep(25 * time.Millisecond)
			continue
		}
		return resp, resp.Err()
	}
}

func (c *Controller) readResponse() (Response, error) {
	d := &decoder{}
	var deadline time.Time
	if c.Timeout > 0 {
		deadline = ctime.Now().Add(c.Timeout)
	}
	for {
		b, ok := c.Port.ReadByte()
		if !ok {
			if c.Timeout > 0 && ctime.Now().After(deadline) {
				return Response{}, ErrTimeout
			}
			time.Sleep(time.Millisecond)
			continue
		}

		payload, done, err := d.feed(b)
		if err != nil {
			return Response{}, err
		}
		if done {
			if len(payload) == 0 {
				return Response{}, FramingError{Reason: "zero-length response payload"}
			}
			resp := Response{Code: ResponseCode(payload[0]), Data: payload[1:]}
			debugf("rx: % X", payload)
			return resp, nil
		}
	}
}

// Close releases the underlying port.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Port.Close()
}
