package s3g

// masterCommand identifies a command addressed directly to the master
// microcontroller.
type masterCommand byte

const (
	cmdVersion          masterCommand = 0
	cmdInit             masterCommand = 1
	cmdGetBufferSize    masterCommand = 2
	cmdClearBuffer      masterCommand = 3
	cmdGetPosition      masterCommand = 4
	cmdGetRange         masterCommand = 5
	cmdSetRange         masterCommand = 6
	cmdAbort            masterCommand = 7
	cmdPause            masterCommand = 8
	cmdProbe            masterCommand = 9
	cmdToolQuery        masterCommand = 10
	cmdIsFinished       masterCommand = 11
	cmdQueuePointAbs    masterCommand = 129
	cmdSetPosition      masterCommand = 130
	cmdFindAxesMinimum  masterCommand = 131
	cmdFindAxesMaximum  masterCommand = 132
	cmdDelay            masterCommand = 133
	cmdChangeTool       masterCommand = 134
	cmdWaitForTool      masterCommand = 135
	cmdToolCommand      masterCommand = 136
	cmdEnableAxes       masterCommand = 137
)

// slaveCommand identifies a command addressed to a tool through
// TOOL_COMMAND/TOOL_QUERY.
type slaveCommand byte

const (
	cmdSlaveVersion       slaveCommand = 0
	cmdSlaveInit          slaveCommand = 1
	cmdGetTemp            slaveCommand = 2
	cmdSetTemp            slaveCommand = 3
	cmdSetMotor1PWM       slaveCommand = 4
	cmdSetMotor2PWM       slaveCommand = 5
	cmdSetMotor1RPM       slaveCommand = 6
	cmdSetMotor2RPM       slaveCommand = 7
	cmdSetMotor1Dir       slaveCommand = 8
	cmdSetMotor2Dir       slaveCommand = 9
	cmdToggleMotor1       slaveCommand = 10
	cmdToggleMotor2       slaveCommand = 11
	cmdToggleFan          slaveCommand = 12
	cmdToggleValve        slaveCommand = 13
	cmdSetServo1Pos       slaveCommand = 14
	cmdSetServo2Pos       slaveCommand = 15
	cmdFilamentStatus     slaveCommand = 16
	cmdGetMotor1RPM       slaveCommand = 17
	cmdGetMotor2RPM       slaveCommand = 18
	cmdGetMotor1PWM       slaveCommand = 19
	cmdGetMotor2PWM       slaveCommand = 20
	cmdSelectTool         slaveCommand = 21
	cmdIsToolReady        slaveCommand = 22
)

// AxisMask selects a combination of axes for ENABLE_AXES and the
// FindAxesMinimum/FindAxesMaximum homing commands, matching the
// original's flags += 1/2/4 accumulation.
type AxisMask uint8

const (
	AxisX AxisMask = 1 << 0
	AxisY AxisMask = 1 << 1
	AxisZ AxisMask = 1 << 2

	axisEnableBit = 1 << 7
)

// Bits returns the mask's raw bit pattern for the wire field.
func (m AxisMask) Bits() uint8 {
	return uint8(m)
}

// ToggleEnabled and ToggleDirectionCW are the bits of a motor toggle flags
// byte: bit0 enables the motor, bit1 selects clockwise direction.
const (
	ToggleEnabled     = 1 << 0
	ToggleDirectionCW = 1 << 1
)
