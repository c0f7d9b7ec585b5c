package s3g

import "math"

// Tool is a single tool-addressed command surface: a toolhead (extruder,
// spindle, fan, heater, valve) reached through a Master's
// TOOL_COMMAND/TOOL_QUERY routing.
type Tool struct {
	Master *Master
	Index  uint8
}

func (t *Tool) command(sub slaveCommand, subargs []byte) error {
	return t.Master.ToolCommand(t.Index, sub, subargs)
}

func (t *Tool) query(sub slaveCommand, subargs []byte) (Response, error) {
	return t.Master.ToolQuery(t.Index, sub, subargs)
}

// microsPerRevFromRPM converts a motor speed in RPM to the microseconds
// per revolution the firmware expects, clamping to the range a u32
// wire field can hold. The original driver clamped with `2 ^ 32 - 1`,
// which in Java is a bitwise XOR rather than exponentiation and clamps
// against 30 instead of the intended 4294967295; this clamps against the
// actual uint32 maximum.
func microsPerRevFromRPM(rpm float64) uint32 {
	if rpm <= 0 {
		return math.MaxUint32
	}
	micros := math.Round(60e6 / rpm)
	if micros >= float64(math.MaxUint32) {
		return math.MaxUint32
	}
	return uint32(micros)
}

// rpmFromMicrosPerRev is the inverse conversion, used when parsing a
// GET_MOTOR_*_RPM reply.
func rpmFromMicrosPerRev(micros uint32) float64 {
	if micros == 0 {
		return 0
	}
	return 60e6 / float64(micros)
}

// SetTemp sets the target temperature in degrees Celsius.
func (t *Tool) SetTemp(tempC uint16) error {
	return t.command(cmdSetTemp, newArgs().putU16(tempC).bytes())
}

// ReadTemp returns the current measured temperature in degrees Celsius.
func (t *Tool) ReadTemp() (uint16, error) {
	resp, err := t.query(cmdGetTemp, nil)
	if err != nil {
		return 0, err
	}
	return resp.GetU16(), nil
}

// SetMotor1RPM and SetMotor1PWM set the extruder motor's speed.
func (t *Tool) SetMotor1RPM(rpm float64) error {
	micros := microsPerRevFromRPM(rpm)
	return t.command(cmdSetMotor1RPM, newArgs().putU32(micros).bytes())
}

func (t *Tool) SetMotor1PWM(pwm uint8) error {
	return t.command(cmdSetMotor1PWM, newArgs().putU8(pwm).bytes())
}

// EnableMotor1 and DisableMotor1 toggle the extruder motor.
func (t *Tool) EnableMotor1(clockwise bool) error {
	return t.toggleMotor1(true, clockwise)
}

func (t *Tool) DisableMotor1() error {
	return t.toggleMotor1(false, false)
}

func (t *Tool) toggleMotor1(enable, clockwise bool) error {
	return t.command(cmdToggleMotor1, newArgs().putU8(motorToggleFlags(enable, clockwise)).bytes())
}

func (t *Tool) GetMotor1RPM() (float64, error) {
	resp, err := t.query(cmdGetMotor1RPM, nil)
	if err != nil {
		return 0, err
	}
	return rpmFromMicrosPerRev(resp.GetU32()), nil
}

func (t *Tool) GetMotor1PWM() (uint8, error) {
	resp, err := t.query(cmdGetMotor1PWM, nil)
	if err != nil {
		return 0, err
	}
	return resp.GetU8(), nil
}

// SetSpindleRPM and SetSpindleSpeedPWM set the motor-2/spindle speed.
func (t *Tool) SetSpindleRPM(rpm float64) error {
	micros := microsPerRevFromRPM(rpm)
	return t.command(cmdSetMotor2RPM, newArgs().putU32(micros).bytes())
}

func (t *Tool) SetSpindleSpeedPWM(pwm uint8) error {
	return t.command(cmdSetMotor2PWM, newArgs().putU8(pwm).bytes())
}

// EnableSpindle and DisableSpindle toggle motor 2. The original driver's
// disableSpindle sent TOGGLE_MOTOR_1, leaving the spindle motor enabled
// while reporting it disabled; this toggles MOTOR_2 on both paths.
func (t *Tool) EnableSpindle(clockwise bool) error {
	return t.command(cmdToggleMotor2, newArgs().putU8(motorToggleFlags(true, clockwise)).bytes())
}

func (t *Tool) DisableSpindle() error {
	return t.command(cmdToggleMotor2, newArgs().putU8(motorToggleFlags(false, false)).bytes())
}

func (t *Tool) GetSpindleSpeedRPM() (float64, error) {
	resp, err := t.query(cmdGetMotor2RPM, nil)
	if err != nil {
		return 0, err
	}
	return rpmFromMicrosPerRev(resp.GetU32()), nil
}

func (t *Tool) GetSpindleSpeedPWM() (uint8, error) {
	resp, err := t.query(cmdGetMotor2PWM, nil)
	if err != nil {
		return 0, err
	}
	return resp.GetU8(), nil
}

func motorToggleFlags(enable, clockwise bool) uint8 {
	var f uint8
	if enable {
		f |= ToggleEnabled
	}
	if clockwise {
		f |= ToggleDirectionCW
	}
	return f
}

// EnableFan and DisableFan toggle the tool's cooling fan.
func (t *Tool) EnableFan() error {
	return t.command(cmdToggleFan, newArgs().putU8(1).bytes())
}

func (t *Tool) DisableFan() error {
	return t.command(cmdToggleFan, newArgs().putU8(0).bytes())
}

// OpenValve and CloseValve toggle the tool's valve.
func (t *Tool) OpenValve() error {
	return t.command(cmdToggleValve, newArgs().putU8(1).bytes())
}

func (t *Tool) CloseValve() error {
	return t.command(cmdToggleValve, newArgs().putU8(0).bytes())
}

// SetServo1Pos and SetServo2Pos set a servo's angle in degrees.
func (t *Tool) SetServo1Pos(degrees uint8) error {
	return t.command(cmdSetServo1Pos, newArgs().putU8(degrees).bytes())
}

func (t *Tool) SetServo2Pos(degrees uint8) error {
	return t.command(cmdSetServo2Pos, newArgs().putU8(degrees).bytes())
}

// FilamentStatus reports the filament presence sensor state.
func (t *Tool) FilamentStatus() (bool, error) {
	resp, err := t.query(cmdFilamentStatus, nil)
	if err != nil {
		return false, err
	}
	return resp.GetU8() != 0, nil
}

// SelectTool tells the tool board it has been made active.
func (t *Tool) SelectTool() error {
	return t.command(cmdSelectTool, nil)
}

// IsToolReady reports whether the tool has reached its target state
// (e.g. temperature) and is ready to use.
func (t *Tool) IsToolReady() (bool, error) {
	resp, err := t.query(cmdIsToolReady, nil)
	if err != nil {
		return false, err
	}
	return resp.GetU8() != 0, nil
}
