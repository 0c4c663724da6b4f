package domain

// ComponentCount is the number of components in a PC specification.
const ComponentCount = 6

// ComponentKeys lists the six component field names in their fixed
// collection order. Index 0 corresponds to collection step 1.
var ComponentKeys = [ComponentCount]string{
	"cpu",
	"motherboard",
	"cpuCooler",
	"ram",
	"gpu",
	"psu",
}

// PCSpec is a six-field PC specification. Field values are free text exactly
// as the customer typed them; no catalog validation is performed here.
type PCSpec struct {
	CPU         string `json:"cpu"`
	Motherboard string `json:"motherboard"`
	CPUCooler   string `json:"cpuCooler"`
	RAM         string `json:"ram"`
	GPU         string `json:"gpu"`
	PSU         string `json:"psu"`
}

// Field returns the value of the n-th component (1-indexed in collection
// order). Returns "" for an out-of-range index.
func (s *PCSpec) Field(n int) string {
	switch n {
	case 1:
		return s.CPU
	case 2:
		return s.Motherboard
	case 3:
		return s.CPUCooler
	case 4:
		return s.RAM
	case 5:
		return s.GPU
	case 6:
		return s.PSU
	default:
		return ""
	}
}

// SetField sets the value of the n-th component (1-indexed in collection
// order). Out-of-range indexes are ignored.
func (s *PCSpec) SetField(n int, value string) {
	switch n {
	case 1:
		s.CPU = value
	case 2:
		s.Motherboard = value
	case 3:
		s.CPUCooler = value
	case 4:
		s.RAM = value
	case 5:
		s.GPU = value
	case 6:
		s.PSU = value
	}
}

// Key returns the wire name of the n-th component (1-indexed), or "" for an
// out-of-range index.
func Key(n int) string {
	if n < 1 || n > ComponentCount {
		return ""
	}
	return ComponentKeys[n-1]
}

// Reset clears all six fields.
func (s *PCSpec) Reset() {
	*s = PCSpec{}
}

// IsEmpty reports whether no field has been filled.
func (s *PCSpec) IsEmpty() bool {
	return *s == PCSpec{}
}
