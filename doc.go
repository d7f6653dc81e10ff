// Package silt is the Composition Root for the silt library.
//
// silt ingests a loosely typed, nested record graph (JSON or YAML shaped) and
// reorganizes it into typed, keyed collections. Relationships between records
// are inferred from field names and resolved into references in both
// directions.
//
// Conventions:
//
//   - A node with a `data` (or `_metadata`) field is a container: the field
//     name it sits under becomes a type and its data elements become records.
//   - The `_k` field is a record's identity. String keys are compared
//     case-insensitively; integral numbers compare equal whatever their Go
//     type (1 and 1.0 are the same key).
//   - A field starting with `_` and declared before `_k` is a link:
//     `_user: 1` (one-to-one), `_tag_s: [a, b]` (one-to-many) and
//     `_start_day: d1` (one-to-one named startDay).
//   - Linked records receive a back-reference under `related[<source type>]`.
//   - `_metadata.transforms` declares field conversions such as `date`.
//
// Usage:
//
//	c, err := silt.LoadFiles([]string{"data/**/*.json"}, silt.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	trips, _ := c.TypeStore("trip")
//	trip, _ := trips.Get(1)
//	start, _ := c.Follow(trip, "startDay")
package silt
