// Package influxdb records vehicle function calls in InfluxDB.
//
// It wraps the official influxdb-client-go v2 library. Every call made
// through the function table becomes one point in the function_invocations
// measurement, tagged with the function, its outcome and the property and
// area it addressed.
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	table.SetRecorder(client)
//
// # Error Handling
//
// Writes are non-blocking and batched according to batch_size and
// flush_interval. Batch failures are counted and logged; they never reach
// the caller of the function table.
package influxdb
