package common

import (
	"os"
)

// SERVICE_NAME, SERVICE_INSTANCE
func GetServiceName() string {
	name := os.Getenv("SERVICE_NAME")
	if name == "" {
		return "shopfloor"
	}
	return name
}

func GetServiceInstance() string {
	instance := os.Getenv("SERVICE_INSTANCE")
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return "unknown"
		}
		return hostname
	}
	return instance
}
