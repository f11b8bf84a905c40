// Package spec models the SPCS service specification document.
//
// A service specification declares the containers a service runs
// (image, environment, resources, readiness probe) and the network
// endpoints it exposes. Specifications are rendered to YAML and inlined
// into CREATE SERVICE ... FROM SPECIFICATION statements, or written to
// disk for review before deployment.
package spec
