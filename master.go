package s3g

import "sync"

// Master issues commands addressed directly to the motion controller, and
// routes tool-addressed commands through TOOL_COMMAND/TOOL_QUERY.
type Master struct {
	Controller *Controller

	isFinishedWarn sync.Once
}

func (m *Master) run(p *payloadBuilder) (Response, error) {
	return m.Controller.RunCommand(p.bytes())
}

// Version sends the host protocol version and returns the device's
// reported firmware version.
func (m *Master) Version(hostProtocolVersion uint16) (Version, error) {
	resp, err := m.run(newPayload(byte(cmdVersion)).putU16(hostProtocolVersion))
	if err != nil {
		return Version{}, err
	}
	raw := resp.GetU16()
	if raw == 0 {
		return Version{}, errNullVersion
	}
	return versionFromWire(raw), nil
}

// Init tells the device the host is ready to issue commands.
func (m *Master) Init() error {
	_, err := m.run(newPayload(byte(cmdInit)))
	return err
}

// GetBufferSize returns the number of free bytes in the device's command
// queue.
func (m *Master) GetBufferSize() (uint32, error) {
	resp, err := m.run(newPayload(byte(cmdGetBufferSize)))
	if err != nil {
		return 0, err
	}
	return resp.GetU32(), nil
}

// ClearBuffer discards any queued, not-yet-executed commands.
func (m *Master) ClearBuffer() error {
	_, err := m.run(newPayload(byte(cmdClearBuffer)))
	return err
}

// GetPosition returns the current step position of each axis.
func (m *Master) GetPosition() (x, y, z int32, err error) {
	resp, err := m.run(newPayload(byte(cmdGetPosition)))
	if err != nil {
		return 0, 0, 0, err
	}
	return resp.GetI32(), resp.GetI32(), resp.GetI32(), nil
}

// GetRange returns the configured travel range (min, max) for an axis.
// The wire shape for GET_RANGE/SET_RANGE/PROBE is not part of the
// original firmware's documented set; this driver uses axis selector
// followed by a pair of i32 step bounds.
func (m *Master) GetRange(axis uint8) (min, max int32, err error) {
	resp, err := m.run(newPayload(byte(cmdGetRange)).putU8(axis))
	if err != nil {
		return 0, 0, err
	}
	return resp.GetI32(), resp.GetI32(), nil
}

// SetRange configures the travel range (min, max) for an axis.
func (m *Master) SetRange(axis uint8, min, max int32) error {
	_, err := m.run(newPayload(byte(cmdSetRange)).putU8(axis).putI32(min).putI32(max))
	return err
}

// Abort cancels the currently executing command and clears the queue.
func (m *Master) Abort() error {
	_, err := m.run(newPayload(byte(cmdAbort)))
	return err
}

// Pause and Unpause both issue the same PAUSE toggle: the firmware has no
// separate resume command, so calling either when out of sync with device
// state desynchronizes pause parity. Track which one you last called.
func (m *Master) Pause() error {
	_, err := m.run(newPayload(byte(cmdPause)))
	return err
}

func (m *Master) Unpause() error {
	_, err := m.run(newPayload(byte(cmdPause)))
	return err
}

// Probe reports whether the probe input is currently triggered on the
// given axis.
func (m *Master) Probe(axis uint8) (bool, error) {
	resp, err := m.run(newPayload(byte(cmdProbe)).putU8(axis))
	if err != nil {
		return false, err
	}
	return resp.GetU8() != 0, nil
}

// IsFinished reports whether the current move queue has drained.
// UNSUPPORTED is treated as "finished"; the firmware condition is logged
// only on the first occurrence.
func (m *Master) IsFinished() (bool, error) {
	resp, err := m.run(newPayload(byte(cmdIsFinished)))
	if _, ok := err.(UnsupportedError); ok {
		m.isFinishedWarn.Do(func() {
			logf("IS_FINISHED unsupported by device, assuming finished")
		})
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return resp.GetU8() != 0, nil
}

// QueueAbsolutePoint queues a linear move to absolute step coordinates,
// pacing it by ddaMicros, the dominant axis's inter-step delay.
func (m *Master) QueueAbsolutePoint(sx, sy, sz, ddaMicros int32) error {
	_, err := m.run(newPayload(byte(cmdQueuePointAbs)).putI32(sx).putI32(sy).putI32(sz).putI32(ddaMicros))
	return err
}

// SetPosition tells the device to treat the given step coordinates as its
// current position, without moving.
func (m *Master) SetPosition(sx, sy, sz int32) error {
	_, err := m.run(newPayload(byte(cmdSetPosition)).putI32(sx).putI32(sy).putI32(sz))
	return err
}

// defaultHomingTimeoutSeconds is the device firmware's fallback timeout
// for a homing move that never trips its endstop.
const defaultHomingTimeoutSeconds = 300

// FindAxesMinimum and FindAxesMaximum home the axes selected by mask
// toward their minimum or maximum endstops, moving at the rate implied
// by micros (the per-step delay). A timeoutS of 0 uses the firmware's
// 300 second default.
func (m *Master) FindAxesMinimum(mask AxisMask, micros uint32, timeoutS uint16) error {
	return m.findAxes(cmdFindAxesMinimum, mask, micros, timeoutS)
}

func (m *Master) FindAxesMaximum(mask AxisMask, micros uint32, timeoutS uint16) error {
	return m.findAxes(cmdFindAxesMaximum, mask, micros, timeoutS)
}

func (m *Master) findAxes(cmd masterCommand, mask AxisMask, micros uint32, timeoutS uint16) error {
	if timeoutS == 0 {
		timeoutS = defaultHomingTimeoutSeconds
	}
	_, err := m.run(newPayload(byte(cmd)).putU8(mask.Bits()).putU32(micros).putU16(timeoutS))
	return err
}

// Delay pauses command execution on the device for ms milliseconds.
func (m *Master) Delay(ms uint32) error {
	_, err := m.run(newPayload(byte(cmdDelay)).putU32(ms))
	return err
}

// EnableAxes and DisableAxes set or clear the per-axis enable bits
// selected by mask.
func (m *Master) EnableAxes(mask AxisMask) error {
	_, err := m.run(newPayload(byte(cmdEnableAxes)).putU8(mask.Bits() | axisEnableBit))
	return err
}

func (m *Master) DisableAxes(mask AxisMask) error {
	_, err := m.run(newPayload(byte(cmdEnableAxes)).putU8(mask.Bits() &^ axisEnableBit))
	return err
}

// ChangeTool selects the active tool by index.
func (m *Master) ChangeTool(idx uint8) error {
	_, err := m.run(newPayload(byte(cmdChangeTool)).putU8(idx))
	return err
}

// WaitForTool blocks device-side command execution until tool idx reports
// ready, polling every pingMs up to timeoutS seconds.
func (m *Master) WaitForTool(idx uint8, pingMs uint16, timeoutS uint16) error {
	_, err := m.run(newPayload(byte(cmdWaitForTool)).putU8(idx).putU16(pingMs).putU16(timeoutS))
	return err
}

// ToolCommand routes a fire-and-forget sub-command to tool idx.
func (m *Master) ToolCommand(idx uint8, sub slaveCommand, subargs []byte) error {
	p := newPayload(byte(cmdToolCommand)).putU8(idx).putU8(byte(sub)).putU8(uint8(len(subargs))).putBytes(subargs)
	_, err := m.run(p)
	return err
}

// ToolQuery routes a sub-command to tool idx and returns its reply.
func (m *Master) ToolQuery(idx uint8, sub slaveCommand, subargs []byte) (Response, error) {
	p := newPayload(byte(cmdToolQuery)).putU8(idx).putU8(byte(sub)).putU8(uint8(len(subargs))).putBytes(subargs)
	return m.run(p)
}
