package mqtt

import (
	"fmt"
	"strings"
)

// TopicPrefixSystem is the base for cartool's own status topics.
const TopicPrefixSystem = "cartool/system"

// Topics provides builders for cartool MQTT topics.
//
// Vehicle service topics live under a configurable prefix so several
// vehicles can share a broker:
//
//	topics := mqtt.Topics{}
//	topics.VehicleRequest("cartool/vhal", "6f1c...")
//	// Returns: "cartool/vhal/request/6f1c..."
type Topics struct{}

// SystemStatus returns the retained online/offline status topic.
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}

// VehicleRequest returns the topic a request with the given id is published on.
func (Topics) VehicleRequest(prefix, requestID string) string {
	return fmt.Sprintf("%s/request/%s", prefix, requestID)
}

// VehicleResponse returns the topic the vehicle answers a request on.
func (Topics) VehicleResponse(prefix, requestID string) string {
	return fmt.Sprintf("%s/response/%s", prefix, requestID)
}

// AllVehicleRequests matches every request under prefix.
func (Topics) AllVehicleRequests(prefix string) string {
	return prefix + "/request/+"
}

// AllVehicleResponses matches every response under prefix.
func (Topics) AllVehicleResponses(prefix string) string {
	return prefix + "/response/+"
}

// RequestIDFromTopic returns the last level of topic, which carries the
// request id for vehicle request and response topics.
func RequestIDFromTopic(topic string) string {
	return topic[strings.LastIndexByte(topic, '/')+1:]
}
