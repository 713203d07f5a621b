package runtime

import "github.com/aretw0/autocore/internal/components"

const (
	scenarioTopSpeed  = 130
	scenarioSpeedStep = 5
)

// scenario is the scripted drive used by RunEventLoop: the speed ramps
// between 0 and 130 km/h, reversing only on ticks divisible by 25, with a
// brake pulse every 30 ticks and a right turn every 25.
type scenario struct {
	speed        int
	accelerating bool
}

func newScenario() scenario {
	return scenario{accelerating: true}
}

// step applies the inputs for tick and returns the speed to display.
func (sc *scenario) step(tick uint64, brakes *components.Brakes, steering *components.Steering) (int, error) {
	if tick%25 == 0 {
		switch {
		case sc.accelerating && sc.speed >= scenarioTopSpeed:
			sc.accelerating = false
		case !sc.accelerating && sc.speed == 0:
			sc.accelerating = true
		}
	}

	switch {
	case sc.accelerating && sc.speed < scenarioTopSpeed:
		sc.speed += scenarioSpeedStep
	case !sc.accelerating && sc.speed > 0:
		sc.speed -= scenarioSpeedStep
	}

	switch {
	case tick%30 == 0 && tick > 0:
		if err := brakes.Apply(50); err != nil {
			return sc.speed, err
		}
	case tick%30 == 10:
		brakes.Release()
	}

	switch tick % 25 {
	case 15:
		if err := steering.Turn(30); err != nil {
			return sc.speed, err
		}
	case 20:
		steering.Center()
	}

	return sc.speed, nil
}
