package s3g_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/makerhost/s3g"
)

var _ = Describe("Session", func() {
	It("reaches Ready on a clean handshake", func() {
		port := &fakePort{}
		port.queueFrame(0x81, 0x65, 0x00) // VERSION reply 101 -> 1.1
		port.queueFrame(0x81)             // INIT reply

		sess := NewSession(port)
		sess.HandshakeTimeout = 50 * time.Millisecond
		sess.HostProtocolVersion = 100

		Expect(sess.Open()).To(Succeed())
		Expect(sess.State()).To(Equal(Ready))
		Expect(sess.Version).To(Equal(Version{Major: 1, Minor: 1}))
		Expect(port.resets).To(Equal(0))
	})

	It("pulses reset and retries after a handshake timeout", func() {
		port := &fakePort{}
		writes := 0
		port.onWrite = func(b []byte) {
			writes++
			switch writes {
			case 1:
				// first VERSION request: device stays silent, times out
			case 2:
				port.queueFrame(0x81, 0x65, 0x00)
			default:
				port.queueFrame(0x81)
			}
		}

		sess := NewSession(port)
		sess.HandshakeTimeout = 10 * time.Millisecond
		sess.ResetSleep = time.Millisecond
		sess.HostProtocolVersion = 100

		Expect(sess.Open()).To(Succeed())
		Expect(sess.State()).To(Equal(Ready))
		Expect(port.resets).To(Equal(1))
	})

	It("fails when firmware is below the minimum version", func() {
		port := &fakePort{}
		port.queueFrame(0x81, 0x64, 0x00) // version 100 -> 1.0

		sess := NewSession(port)
		sess.HandshakeTimeout = 50 * time.Millisecond
		sess.HostProtocolVersion = 100

		err := sess.Open()
		Expect(err).To(MatchError(BadFirmwareVersionError{
			Got: Version{Major: 1, Minor: 0},
			Min: DefaultMinFirmwareVersion,
		}))
	})

	It("retries opening the port until it succeeds", func() {
		port := &fakePort{
			openErrs: []error{ErrPortNotFound, ErrPortNotFound},
		}
		port.queueFrame(0x81, 0x65, 0x00)
		port.queueFrame(0x81)

		sess := NewSession(port)
		sess.HandshakeTimeout = 50 * time.Millisecond
		sess.PortOpenRetry = time.Millisecond

		Expect(sess.Open()).To(Succeed())
		Expect(port.openAttempts).To(Equal(3))
	})
})
