// Package metrics holds the Prometheus collectors of the oracle services.
package metrics

const namespace = "ratrace"

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
