/*
Package generators provides the reference hand generators.

Each generator turns one family of input events into hand states and pushes a
request into the integrator when its device is used. The poses are simple and
deterministic: they place the hands on a nominal keyboard, pointer, pad or
controller so the arbitration core can be driven end to end without real
device sampling.

	dep := generators.Dependency{
		Requests: in.Requests(),
		Runtime:  in,
		Events:   in.Events(),
	}
	set := generators.NewSet(dep)
	_ = in.Register(set.All()...)
	_ = in.Start(set.Typing)
*/
package generators
