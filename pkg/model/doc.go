// Package model defines the intermediate component model shared by the scanner
// and the generator. A Component captures the sections of an options-style Vue
// component (props, data, computed, methods, watch, lifecycle hooks) in
// declaration order so the generator can emit composition-style output with a
// stable layout. Components are assembled through the immutable Builder; the
// generator treats them as read-only input.
package model
