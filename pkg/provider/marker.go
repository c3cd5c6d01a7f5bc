// Package provider wraps yoke containers in marker-typed payloads and the
// response envelope data loaders return them in.
//
// A marker is a zero-size type naming a kind of data. It implements
// DataMarker[Y] for exactly one view type Y:
//
//	type HelloWorldV1Marker struct{}
//
//	func (HelloWorldV1Marker) Yokeable(HelloWorldV1) {}
//
// Payloads are DataPayload[M, Y]. Markers that share a view type can be cast
// into one another without touching the data.
package provider

import "fmt"

// DataMarker binds a marker type to its view type Y. Yokeable is never called.
type DataMarker[Y any] interface {
	Yokeable(Y)
}

func markerName[M any]() string {
	var m M
	return fmt.Sprintf("%T", m)
}
