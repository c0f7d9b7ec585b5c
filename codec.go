package s3g

const startByte = 0xD5

// decoderState is the byte-at-a-time packet decoder's position within a
// frame: start byte, length byte, payload bytes, then the trailing CRC.
type decoderState int

const (
	awaitStart decoderState = iota
	awaitLength
	inPayload
	awaitCrc
)

// decoder reassembles framed packets from a byte stream one byte at a
// time, so it can sit directly on top of a reader that only ever hands
// back whatever is currently available.
type decoder struct {
	state   decoderState
	length  int
	payload []byte
}

// feed consumes one byte. It returns the decoded payload (response code
// plus fields, CRC stripped) and ok=true once a complete, CRC-valid frame
// has been assembled. A CRC failure resets the decoder and returns a
// CrcMismatchError instead of ok=true so the caller can decide whether to
// retry or surface it.
func (d *decoder) feed(b byte) (payload []byte, ok bool, err error) {
	switch d.state {
	case awaitStart:
		if b == startByte {
			d.state = awaitLength
		}
		return nil, false, nil

	case awaitLength:
		d.length = int(b)
		d.payload = make([]byte, 0, d.length)
		if d.length == 0 {
			d.state = awaitCrc
		} else {
			d.state = inPayload
		}
		return nil, false, nil

	case inPayload:
		d.payload = append(d.payload, b)
		if len(d.payload) == d.length {
			d.state = awaitCrc
		}
		return nil, false, nil

	case awaitCrc:
		d.state = awaitStart
		if crcByte(d.payload) != b {
			return nil, false, CrcMismatchError{Data: d.payload}
		}
		return d.payload, true, nil
	}
	return nil, false, nil
}

// encode frames a payload for transmission: start byte, length byte,
// payload, then the CRC-8 of the payload alone.
func encode(payload []byte) []byte {
	pkt := make([]byte, 0, 3+len(payload))
	pkt = append(pkt, startByte, byte(len(payload)))
	pkt = append(pkt, payload...)
	pkt = append(pkt, crcByte(payload))
	return pkt
}
