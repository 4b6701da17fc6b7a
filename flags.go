package aeff

import (
	"fmt"
	"strconv"
)

// FloatList collects a repeatable float command-line flag (bin edges, cut
// sweeps), replacing its default values on first use.
type FloatList struct {
	Values  []float64
	beenSet bool
}

func (f *FloatList) Set(valueStr string) error {
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return err
	}

	if !f.beenSet {
		f.beenSet = true
		f.Values = nil
	}

	f.Values = append(f.Values, value)
	return nil
}

func (f *FloatList) String() string {
	return fmt.Sprint(f.Values)
}
