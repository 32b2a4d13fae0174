package llm

import "reflect"

// Zero resets the value pointed to by out to its zero value. Slices and
// maps become nil, nested structs are zeroed recursively by assignment.
// Non-pointer and nil arguments are ignored.
func Zero(out any) {
	if out == nil {
		return
	}
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return
	}
	elem := v.Elem()
	if !elem.CanSet() {
		return
	}
	elem.Set(reflect.Zero(elem.Type()))
}
