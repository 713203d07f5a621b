package components

import "github.com/aretw0/autocore/pkg/domain"

const (
	MaxBrakePressure = 100
	pressureDecay    = 5
)

// Brakes holds a pressure in percent that bleeds off once released.
type Brakes struct {
	base
	applied  bool
	pressure int
}

var _ Component = (*Brakes)(nil)

func NewBrakes(opts ...Option) *Brakes {
	s := newSettings(opts)
	return &Brakes{base: newBase(domain.Brakes, s.logger)}
}

func (b *Brakes) Initialize() error {
	b.selfCheck("brake fluid", "brake pads", "ABS system")
	return nil
}

// Apply sets the pressure. Values outside [0, 100] are rejected with a
// *domain.RangeError and leave the brakes untouched.
func (b *Brakes) Apply(pressure int) error {
	if err := domain.CheckRange("brake pressure", pressure, 0, MaxBrakePressure); err != nil {
		return err
	}
	b.applied = true
	b.pressure = pressure
	b.logger.Info("brakes applied", "pressure", pressure)
	b.emit(domain.BrakeApplied{Pressure: pressure})
	return nil
}

// Release lets the pressure decay on subsequent updates.
func (b *Brakes) Release() {
	if !b.applied {
		return
	}
	b.applied = false
	b.logger.Info("brakes released")
	b.emit(domain.BrakeReleased{})
}

func (b *Brakes) Update() error {
	if !b.applied && b.pressure > 0 {
		b.pressure = max(0, b.pressure-pressureDecay)
		if b.pressure == 0 {
			b.logger.Debug("brakes fully released")
		}
	}
	if b.pressure > 0 {
		b.emit(domain.BrakePressureChanged{Pressure: b.pressure})
	}
	return nil
}

func (b *Brakes) Pressure() int   { return b.pressure }
func (b *Brakes) IsApplied() bool { return b.applied }
