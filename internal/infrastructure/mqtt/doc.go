// Package mqtt provides the broker connection cartool uses to reach a
// remote vehicle property service.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Publishing with QoS and a size limit
//   - Subscriptions, restored after every reconnect
//   - A retained online/offline status on cartool/system/status, with a
//     Last Will so a crash is visible to other clients
//
// Usage:
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.Subscribe(mqtt.Topics{}.AllVehicleResponses("cartool/vhal"), 1,
//	    func(topic string, payload []byte) error {
//	        return handle(mqtt.RequestIDFromTopic(topic), payload)
//	    })
//
// Use TLS (mqtt.broker.tls) whenever the broker is not on localhost.
package mqtt
