package spec

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Specification is the top-level service specification document.
type Specification struct {
	Spec ServiceSpec `yaml:"spec"`
}

// ServiceSpec holds the containers and endpoints of a service.
type ServiceSpec struct {
	Containers []Container `yaml:"containers"`
	Endpoints  []Endpoint  `yaml:"endpoints,omitempty"`
}

// Container describes one container in the service.
type Container struct {
	Name           string            `yaml:"name"`
	Image          string            `yaml:"image"`
	Env            map[string]string `yaml:"env,omitempty"`
	Resources      *Resources        `yaml:"resources,omitempty"`
	ReadinessProbe *ReadinessProbe   `yaml:"readinessProbe,omitempty"`
}

// Resources holds resource requests and limits.
type Resources struct {
	Requests ResourceList `yaml:"requests,omitempty"`
	Limits   ResourceList `yaml:"limits,omitempty"`
}

// ResourceList is a cpu/memory pair. Values follow the Kubernetes
// quantity syntax ("0.5", "500m", "512Mi", "2Gi").
type ResourceList struct {
	CPU    string `yaml:"cpu,omitempty"`
	Memory string `yaml:"memory,omitempty"`
}

// ReadinessProbe describes the HTTP readiness check for a container.
type ReadinessProbe struct {
	Port int    `yaml:"port"`
	Path string `yaml:"path,omitempty"`
}

// Endpoint declares a network endpoint exposed by the service.
type Endpoint struct {
	Name   string `yaml:"name"`
	Port   int    `yaml:"port"`
	Public bool   `yaml:"public,omitempty"`
}

var (
	nameRegex   = regexp.MustCompile(`^[a-z][a-z0-9-]{0,62}$`)
	cpuRegex    = regexp.MustCompile(`^\d+(\.\d+)?m?$`)
	memoryRegex = regexp.MustCompile(`^\d+(Mi|Gi|M|G)$`)
)

// Validate checks the specification against the SPCS rules.
func (s *Specification) Validate() error {
	if len(s.Spec.Containers) == 0 {
		return fmt.Errorf("specification must declare at least one container")
	}

	containerNames := make(map[string]bool)
	for i, c := range s.Spec.Containers {
		if !nameRegex.MatchString(c.Name) {
			return fmt.Errorf("container %d: invalid name %q (lowercase alphanumeric and hyphens)", i, c.Name)
		}
		if containerNames[c.Name] {
			return fmt.Errorf("duplicate container name %q", c.Name)
		}
		containerNames[c.Name] = true

		if c.Image == "" {
			return fmt.Errorf("container %q: image is required", c.Name)
		}

		if c.Resources != nil {
			if err := c.Resources.validate(); err != nil {
				return fmt.Errorf("container %q: %w", c.Name, err)
			}
		}

		if c.ReadinessProbe != nil {
			if err := validatePort(c.ReadinessProbe.Port); err != nil {
				return fmt.Errorf("container %q readiness probe: %w", c.Name, err)
			}
		}
	}

	boundPorts := make(map[int]bool)
	for _, c := range s.Spec.Containers {
		if c.ReadinessProbe != nil {
			boundPorts[c.ReadinessProbe.Port] = true
		}
	}

	endpointNames := make(map[string]bool)
	for _, e := range s.Spec.Endpoints {
		if !nameRegex.MatchString(e.Name) {
			return fmt.Errorf("endpoint: invalid name %q (lowercase alphanumeric and hyphens)", e.Name)
		}
		if endpointNames[e.Name] {
			return fmt.Errorf("duplicate endpoint name %q", e.Name)
		}
		endpointNames[e.Name] = true

		if err := validatePort(e.Port); err != nil {
			return fmt.Errorf("endpoint %q: %w", e.Name, err)
		}
		// An endpoint must route to a port some container listens on,
		// or SPCS creates ingress that goes nowhere.
		if !boundPorts[e.Port] {
			return fmt.Errorf("endpoint %q: port %d is not exposed by any container", e.Name, e.Port)
		}
	}

	return nil
}

func (r *Resources) validate() error {
	for _, rl := range []ResourceList{r.Requests, r.Limits} {
		if rl.CPU != "" && !cpuRegex.MatchString(rl.CPU) {
			return fmt.Errorf("invalid cpu quantity %q", rl.CPU)
		}
		if rl.Memory != "" && !memoryRegex.MatchString(rl.Memory) {
			return fmt.Errorf("invalid memory quantity %q", rl.Memory)
		}
	}
	return nil
}

func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}
	return nil
}

// Marshal renders the specification as YAML.
func (s *Specification) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Load parses and validates a specification from YAML bytes.
func Load(data []byte) (*Specification, error) {
	var s Specification
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse specification: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads and validates a specification from a YAML file.
func LoadFile(path string) (*Specification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read specification: %w", err)
	}
	return Load(data)
}

// WriteFile validates and writes the specification to a YAML file.
func (s *Specification) WriteFile(path string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
