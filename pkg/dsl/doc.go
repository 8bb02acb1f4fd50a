/*
Package dsl provides a fluent Go API for building decision trees in code.

It is an alternative to YAML documents, useful for tests and for trees that
are generated programmatically. Built trees go through the same integrity
validation as loaded ones.

Example usage:

	b := dsl.New("generator", "Generator")

	b.Add("start").
		Question("What problem are you experiencing with your generator?").
		Go("Generator won't start", "wont-start")

	b.Add("wont-start").
		Question("What happens when you try to start it?").
		Conclude("Nothing at all - completely dead",
			dsl.Diagnosis("Dead or Discharged Battery", domain.SeverityLow).
				Causes("Battery discharged").
				DIY())

	tree, err := b.Build()
*/
package dsl
