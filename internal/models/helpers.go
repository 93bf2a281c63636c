// ABOUTME: Pointer helpers for optional model fields.
// ABOUTME: Used by CLI flag handling and tests.
package models

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
