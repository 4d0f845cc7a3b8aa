// Package mqttvhal carries the vehicle property service over MQTT.
//
// Client implements vhal.Service by publishing CBOR requests to
// <prefix>/request/<id> and waiting for the matching CBOR reply on
// <prefix>/response/<id>. Server does the reverse: it answers requests from
// any vhal.Service, which lets a simulator or a vehicle gateway sit on the
// far side of a broker.
//
// Requests are not retried. A request that gets no answer within the
// client's timeout fails with vhal.ErrServiceUnavailable.
package mqttvhal
