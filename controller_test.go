package s3g_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bangzek/clock"
	. "github.com/makerhost/s3g"
)

var _ = Describe("Controller", func() {
	const dsn = clock.DefaultScriptNow

	Context("single command", func() {
		It("runs just fine", func() {
			port := &fakePort{}
			port.queueFrame(0x81, 0x65, 0x00)
			con := NewController(port)
			log := NewLog()

			resp, err := con.RunCommand([]byte{0, 0x64, 0x00})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Code).To(Equal(OK))
			Expect(port.writes).To(Equal([][]byte{
				{0xD5, 0x03, 0x00, 0x64, 0x00, 0xCB},
			}))
			Expect(log.Msgs).To(ContainElement("D:tx: D5 03 00 64 00 CB"))
		})
	})

	Context("buffer overflow", func() {
		It("retries with a 25ms gap until OK", func() {
			port := &fakePort{}
			port.queueFrame(0x82)
			port.queueFrame(0x82)
			port.queueFrame(0x81)
			con := NewController(port)

			start := time.Now()
			resp, err := con.RunCommand([]byte{137, 0x87})
			elapsed := time.Since(start)

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Code).To(Equal(OK))
			Expect(port.writes).To(HaveLen(3))
			Expect(port.writes[0]).To(Equal(port.writes[1]))
			Expect(port.writes[1]).To(Equal(port.writes[2]))
			Expect(elapsed).To(BeNumerically(">=", 50*time.Millisecond))
		})
	})

	Context("crc mismatch", func() {
		It("surfaces without retrying", func() {
			port := &fakePort{}
			port.bytesQueue = []byte{0xD5, 0x01, 0x81, 0x00}
			con := NewController(port)

			_, err := con.RunCommand([]byte{0})
			var crcErr CrcMismatchError
			Expect(err).To(BeAssignableToTypeOf(crcErr))
			Expect(port.writes).To(HaveLen(1))
		})
	})

	Context("unsupported", func() {
		It("returns UnsupportedError", func() {
			port := &fakePort{}
			port.queueFrame(0x85)
			con := NewController(port)

			_, err := con.RunCommand([]byte{11})
			Expect(err).To(MatchError(UnsupportedError{}))
		})
	})

	Context("timeout", func() {
		It("returns ErrTimeout after the configured deadline", func() {
			t := time.Date(2024, time.March, 2, 10, 11, 12, 0, time.UTC)
			mc := new(clock.Mock)
			mc.NowScripts = []time.Duration{0, 0, time.Second}
			SetClock(mc)
			mc.Start(t)

			port := &fakePort{}
			con := NewController(port)
			con.Timeout = time.Second

			_, err := con.RunCommand([]byte{0})
			Expect(err).To(MatchError(ErrTimeout))
			mc.Stop()
			Expect(mc.Calls()).To(HaveExactElements("now", "now", "now"))
		})
	})
})

// fakePort is a Port double: Write records frames verbatim, ReadByte
// drains a pre-seeded byte queue.
type fakePort struct {
	writes     [][]byte
	bytesQueue []byte
	readIdx    int
	resets     int
	openErrs     []error
	openIdx      int
	openAttempts int
	onReset      func()
	onWrite      func(b []byte)
}

func (p *fakePort) queueFrame(payload ...byte) {
	p.bytesQueue = append(p.bytesQueue, EncodePacket(payload)...)
}

func (p *fakePort) Open() error {
	p.openAttempts++
	if p.openIdx < len(p.openErrs) {
		err := p.openErrs[p.openIdx]
		p.openIdx++
		return err
	}
	return nil
}

func (p *fakePort) Write(b []byte) (int, error) {
	cp := append([]byte{}, b...)
	p.writes = append(p.writes, cp)
	if p.onWrite != nil {
		p.onWrite(cp)
	}
	return len(b), nil
}

func (p *fakePort) ReadByte() (byte, bool) {
	if p.readIdx >= len(p.bytesQueue) {
		return 0, false
	}
	b := p.bytesQueue[p.readIdx]
	p.readIdx++
	return b, true
}

func (p *fakePort) Available() int { return len(p.bytesQueue) - p.readIdx }
func (p *fakePort) Clear()         { p.readIdx = len(p.bytesQueue) }
func (p *fakePort) PulseResetLow() error {
	p.resets++
	if p.onReset != nil {
		p.onReset()
	}
	return nil
}
func (p *fakePort) Close() error { return nil }
