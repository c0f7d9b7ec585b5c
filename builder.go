package s3g

// payloadBuilder accumulates little-endian fixed-width fields into a
// request payload, mirroring the Get* accessors on Response.
type payloadBuilder struct {
	b []byte
}

func newPayload(cmd byte) *payloadBuilder {
	return &payloadBuilder{b: []byte{cmd}}
}

// newArgs starts a builder with no leading command byte, for assembling
// tool-command subargs that get wrapped by Master.ToolCommand/ToolQuery.
func newArgs() *payloadBuilder {
	return &payloadBuilder{}
}

func (p *payloadBuilder) putU8(v uint8) *payloadBuilder {
	p.b = append(p.b, v)
	return p
}

func (p *payloadBuilder) putI8(v int8) *payloadBuilder {
	return p.putU8(uint8(v))
}

func (p *payloadBuilder) putU16(v uint16) *payloadBuilder {
	p.b = append(p.b, byte(v), byte(v>>8))
	return p
}

func (p *payloadBuilder) putI16(v int16) *payloadBuilder {
	return p.putU16(uint16(v))
}

func (p *payloadBuilder) putU32(v uint32) *payloadBuilder {
	p.b = append(p.b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	return p
}

func (p *payloadBuilder) putI32(v int32) *payloadBuilder {
	return p.putU32(uint32(v))
}

func (p *payloadBuilder) putBytes(v []byte) *payloadBuilder {
	p.b = append(p.b, v...)
	return p
}

func (p *payloadBuilder) bytes() []byte {
	return p.b
}
