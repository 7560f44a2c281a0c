/*
Package dsl provides a Go DSL for building handik scenarios.

It is the typed alternative to scenario YAML files, convenient for tests and
for generating input sequences programmatically.

Example usage:

	b := dsl.New("mouse-takeover").FPS(8)

	b.At(0.5).MouseMove(0.2, -0.1)
	b.At(0.75).Expect(domain.HandRight, domain.TargetMouse)
	b.At(0.75).Expect(domain.HandLeft, domain.TargetKeyboard)

	s, err := b.Build()
	// ... pass s to scenario.Run, or b.Loader() to anything taking a ports.ScenarioLoader
*/
package dsl
