package components

import "github.com/aretw0/autocore/pkg/domain"

const (
	MaxSteeringAngle = 90
	centeringRate    = 2
	deadZone         = 10
)

// Direction names the side an angle points to; within ±10° it is CENTER.
func Direction(angle int) string {
	switch {
	case angle > deadZone:
		return "RIGHT"
	case angle < -deadZone:
		return "LEFT"
	default:
		return "CENTER"
	}
}

// Steering holds the wheel angle in degrees, negative to the left.
// Power assist pulls it back towards zero on every update.
type Steering struct {
	base
	angle    int
	reported int
}

var _ Component = (*Steering)(nil)

func NewSteering(opts ...Option) *Steering {
	s := newSettings(opts)
	return &Steering{base: newBase(domain.Steering, s.logger)}
}

func (s *Steering) Initialize() error {
	s.selfCheck("power steering", "center calibration")
	return nil
}

// Turn sets the angle. Values outside [-90, 90] are rejected with a
// *domain.RangeError.
func (s *Steering) Turn(angle int) error {
	if err := domain.CheckRange("steering angle", angle, -MaxSteeringAngle, MaxSteeringAngle); err != nil {
		return err
	}
	s.logger.Info("steering turned", "angle", angle, "direction", Direction(angle))
	s.angle = angle
	return nil
}

func (s *Steering) Center() {
	if s.angle != 0 {
		s.logger.Info("steering returning to center")
		s.angle = 0
	}
}

// Update re-centers the wheel and publishes the angle while it is off
// center, then SteeringCentered once it gets back.
func (s *Steering) Update() error {
	switch {
	case s.angle > 0:
		s.angle = max(0, s.angle-centeringRate)
	case s.angle < 0:
		s.angle = min(0, s.angle+centeringRate)
	}

	if s.angle != 0 {
		s.emit(domain.SteeringTurned{Angle: s.angle})
	} else if s.reported != 0 {
		s.emit(domain.SteeringCentered{})
	}
	s.reported = s.angle
	return nil
}

func (s *Steering) Angle() int        { return s.angle }
func (s *Steering) Direction() string { return Direction(s.angle) }
