// Package api defines the Tripzy RPC surface: procedure names, request and
// response messages, handler constructors and clients for every service.
//
// Messages are plain Go structs carried as JSON. Every handler and client
// built here installs Codec, so both sides speak application/json.
package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// PackagePrefix is the leading path segment shared by all procedures.
const PackagePrefix = "/tripzy.v1."

// Codec marshals messages with encoding/json. It registers under the name
// "json", replacing connect's protobuf-only JSON codec.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}

// PublicProcedures can be called without a bearer token.
var PublicProcedures = []string{
	AuthServiceRegisterProcedure,
	AuthServiceLoginProcedure,
	WaitlistServiceJoinWaitlistProcedure,
	PlannerServiceChatProcedure,
}
