package media

// DeliveryTarget is the orientation category requested by the caller.
type DeliveryTarget string

const (
	TargetHome  DeliveryTarget = "home"
	TargetFlash DeliveryTarget = "flash"
)

// Known reports whether t is one of the supported targets.
func (t DeliveryTarget) Known() bool {
	return t == TargetHome || t == TargetFlash
}

// Orientation names the orientation a target expects.
func (t DeliveryTarget) Orientation() string {
	switch t {
	case TargetHome:
		return "horizontal"
	case TargetFlash:
		return "vertical"
	default:
		return "unknown"
	}
}
