package provider

// HelloWorldV1 is a minimal data struct used by examples and tests.
type HelloWorldV1 struct {
	Message string
}

// HelloWorldV1Marker names HelloWorldV1 data.
type HelloWorldV1Marker struct{}

func (HelloWorldV1Marker) Yokeable(HelloWorldV1) {}

// HelloWorldPayload is a payload of HelloWorldV1 data.
type HelloWorldPayload = DataPayload[HelloWorldV1Marker, HelloWorldV1]

// FromStaticStr builds a hello world payload from a constant message.
func FromStaticStr(s string) *HelloWorldPayload {
	return FromOwned[HelloWorldV1Marker](HelloWorldV1{Message: s})
}
