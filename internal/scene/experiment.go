package scene

import "fmt"

// ExperimentKind selects a canned charge configuration. It is a closed enum
// so dispatch stays exhaustive; string names exist only at the CLI and
// config boundary.
type ExperimentKind int

const (
	ExperimentSingle ExperimentKind = iota
	ExperimentDipole
	ExperimentQuadrupole
	ExperimentCapacitor
	ExperimentRandom
)

func (k ExperimentKind) String() string {
	switch k {
	case ExperimentSingle:
		return "single"
	case ExperimentDipole:
		return "dipole"
	case ExperimentQuadrupole:
		return "quadrupole"
	case ExperimentCapacitor:
		return "capacitor"
	case ExperimentRandom:
		return "random"
	}
	return "unknown"
}

// Description is the one-line menu text for an experiment.
func (k ExperimentKind) Description() string {
	switch k {
	case ExperimentSingle:
		return "one positive charge"
	case ExperimentDipole:
		return "opposite pair"
	case ExperimentQuadrupole:
		return "alternating square"
	case ExperimentCapacitor:
		return "parallel plates"
	case ExperimentRandom:
		return "random scatter"
	}
	return ""
}

// Experiments lists every kind in menu order.
func Experiments() []ExperimentKind {
	return []ExperimentKind{
		ExperimentSingle,
		ExperimentDipole,
		ExperimentQuadrupole,
		ExperimentCapacitor,
		ExperimentRandom,
	}
}

// ExperimentByName resolves a CLI or config name.
func ExperimentByName(name string) (ExperimentKind, error) {
	for _, k := range Experiments() {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown experiment: %s", name)
}
