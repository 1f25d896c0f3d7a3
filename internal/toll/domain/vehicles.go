package toll

import "strings"

// TollFreeVehicles is the immutable set of exempt vehicle classes,
// case-normalized at construction.
type TollFreeVehicles struct {
	classes map[string]struct{}
}

// NewTollFreeVehicles builds the exempt set from configured class names.
func NewTollFreeVehicles(classes []string) *TollFreeVehicles {
	set := make(map[string]struct{}, len(classes))
	for _, class := range classes {
		set[strings.ToLower(class)] = struct{}{}
	}
	return &TollFreeVehicles{classes: set}
}

// IsTollFreeVehicle reports whether the vehicle class is exempt. An absent
// class (nil) is exempt; an empty-but-present class is an ordinary lookup and
// is not. Callers rely on that asymmetry.
func (v *TollFreeVehicles) IsTollFreeVehicle(class *string) bool {
	if class == nil {
		return true
	}
	_, ok := v.classes[strings.ToLower(*class)]
	return ok
}
