package s3g_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "github.com/makerhost/s3g"
)

var _ = Describe("Tool", func() {
	var (
		port *fakePort
		tool *Tool
	)

	BeforeEach(func() {
		port = &fakePort{}
		tool = &Tool{Master: &Master{Controller: NewController(port)}, Index: 1}
	})

	It("sets temperature via TOOL_COMMAND/SET_TEMP", func() {
		port.queueFrame(0x81)
		Expect(tool.SetTemp(200)).To(Succeed())
		Expect(port.writes[0]).To(Equal(EncodePacket([]byte{136, 1, 3, 2, 0xC8, 0x00})))
	})

	It("reads temperature via TOOL_QUERY/GET_TEMP", func() {
		port.queueFrame(0x81, 0xC8, 0x00)
		temp, err := tool.ReadTemp()
		Expect(err).NotTo(HaveOccurred())
		Expect(temp).To(Equal(uint16(200)))
	})

	It("disables the spindle with TOGGLE_MOTOR_2, not MOTOR_1", func() {
		port.queueFrame(0x81)
		Expect(tool.DisableSpindle()).To(Succeed())
		Expect(port.writes[0]).To(Equal(EncodePacket([]byte{136, 1, 11, 1, 0x00})))
	})

	It("enables the spindle clockwise via TOGGLE_MOTOR_2", func() {
		port.queueFrame(0x81)
		Expect(tool.EnableSpindle(true)).To(Succeed())
		Expect(port.writes[0]).To(Equal(EncodePacket([]byte{136, 1, 11, 1, 0x03})))
	})
})

var _ = Describe("RPM/microsecond conversion", func() {
	It("round-trips a typical RPM", func() {
		port := &fakePort{}
		port.queueFrame(0x81)
		tool := &Tool{Master: &Master{Controller: NewController(port)}, Index: 0}
		Expect(tool.SetMotor1RPM(200)).To(Succeed())

		pkt := port.writes[0]
		// payload is pkt[2 : len-1] (strip start+len, trailing CRC):
		// [TOOL_COMMAND, toolIndex, SET_MOTOR_1_RPM, sublen, micros(u32 LE)]
		payload := pkt[2 : len(pkt)-1]
		Expect(payload[2]).To(Equal(byte(6))) // SET_MOTOR_1_RPM
		micros := uint32(payload[4]) | uint32(payload[5])<<8 | uint32(payload[6])<<16 | uint32(payload[7])<<24
		Expect(micros).To(Equal(uint32(300000)))
	})

	It("clamps to uint32 max instead of XOR-ing the shift", func() {
		port := &fakePort{}
		port.queueFrame(0x81)
		tool := &Tool{Master: &Master{Controller: NewController(port)}, Index: 0}
		Expect(tool.SetMotor1RPM(0)).To(Succeed())

		pkt := port.writes[0]
		payload := pkt[2 : len(pkt)-1]
		micros := uint32(payload[4]) | uint32(payload[5])<<8 | uint32(payload[6])<<16 | uint32(payload[7])<<24
		Expect(micros).To(Equal(uint32(4294967295)))
	})
})
