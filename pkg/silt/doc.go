// Package silt holds the Context: the registry of typed collections built
// from one or more raw object graphs.
//
// Usage:
//
//	ctx := silt.NewContext(silt.Settings{})
//	if _, err := ctx.LoadFromObject(raw); err != nil {
//		return err
//	}
//	trips, _ := ctx.TypeStore("trip")
//	trip, _ := trips.Get(1)
//	start, _ := ctx.Follow(trip, "startDay")
package silt
