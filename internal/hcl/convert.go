// This file contains the logic for converting evaluated cty values from a
// module block into the native Go values a param.Set stores.

package hcl

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ctyToGo converts a cty.Value into its natural Go counterpart. Numbers
// become float64 (module parameters are double-valued), and homogeneous
// numeric lists become []float64 so vector-valued parameters stay typed.
func ctyToGo(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, fmt.Errorf("value must be known and non-null")
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert number to float64: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType():
		elems := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			converted, err := ctyToGo(elem)
			if err != nil {
				return nil, err
			}
			elems = append(elems, converted)
		}
		if floats, ok := asFloatSlice(elems); ok {
			return floats, nil
		}
		if strs, ok := asStringSlice(elems); ok {
			return strs, nil
		}
		return nil, fmt.Errorf("list values must be all numbers or all strings")

	default:
		return nil, fmt.Errorf("unsupported parameter type: %s", ty.FriendlyName())
	}
}

func asFloatSlice(elems []any) ([]float64, bool) {
	floats := make([]float64, 0, len(elems))
	for _, e := range elems {
		f, ok := e.(float64)
		if !ok {
			return nil, false
		}
		floats = append(floats, f)
	}
	return floats, true
}

func asStringSlice(elems []any) ([]string, bool) {
	strs := make([]string, 0, len(elems))
	for _, e := range elems {
		s, ok := e.(string)
		if !ok {
			return nil, false
		}
		strs = append(strs, s)
	}
	return strs, true
}
