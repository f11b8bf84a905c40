package spec

import "fmt"

// RenderOptions holds the inputs for building a single-container web
// service specification, the shape the dashboard deployment uses.
type RenderOptions struct {
	// ContainerName is the container identifier; defaults to "main".
	ContainerName string

	// Image is the full registry path of the pushed image.
	Image string

	// Port is the port the application listens on.
	Port int

	// EndpointName names the public endpoint; defaults to "app".
	EndpointName string

	// Env is passed to the container verbatim.
	Env map[string]string

	// CPU/Memory requests. Limits mirror requests when set.
	CPU    string
	Memory string

	// ReadinessPath is the HTTP path probed for readiness; defaults to "/".
	ReadinessPath string
}

// Render builds a validated specification for a single-container service
// with one public endpoint.
func Render(opts RenderOptions) (*Specification, error) {
	if opts.Image == "" {
		return nil, fmt.Errorf("image is required")
	}

	name := opts.ContainerName
	if name == "" {
		name = "main"
	}
	endpoint := opts.EndpointName
	if endpoint == "" {
		endpoint = "app"
	}
	port := opts.Port
	if port == 0 {
		port = 3000
	}
	path := opts.ReadinessPath
	if path == "" {
		path = "/"
	}

	container := Container{
		Name:  name,
		Image: opts.Image,
		Env:   opts.Env,
		ReadinessProbe: &ReadinessProbe{
			Port: port,
			Path: path,
		},
	}

	if opts.CPU != "" || opts.Memory != "" {
		rl := ResourceList{CPU: opts.CPU, Memory: opts.Memory}
		container.Resources = &Resources{Requests: rl, Limits: rl}
	}

	s := &Specification{
		Spec: ServiceSpec{
			Containers: []Container{container},
			Endpoints: []Endpoint{
				{Name: endpoint, Port: port, Public: true},
			},
		},
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
