package spec

import (
	"path/filepath"
	"strings"
	"testing"
)

func validSpec() *Specification {
	return &Specification{
		Spec: ServiceSpec{
			Containers: []Container{
				{
					Name:  "dashboard",
					Image: "/tasty_bytes/public/dashboard_repo/dashboard:latest",
					Env:   map[string]string{"SNOWFLAKE_WAREHOUSE": "QUERY_WH"},
					Resources: &Resources{
						Requests: ResourceList{CPU: "0.5", Memory: "512Mi"},
						Limits:   ResourceList{CPU: "1", Memory: "1Gi"},
					},
					ReadinessProbe: &ReadinessProbe{Port: 3000, Path: "/"},
				},
			},
			Endpoints: []Endpoint{
				{Name: "app", Port: 3000, Public: true},
			},
		},
	}
}

func TestValidateAcceptsWellFormedSpec(t *testing.T) {
	if err := validSpec().Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Specification)
		want   string
	}{
		{
			"no containers",
			func(s *Specification) { s.Spec.Containers = nil },
			"at least one container",
		},
		{
			"bad container name",
			func(s *Specification) { s.Spec.Containers[0].Name = "Not_Valid" },
			"invalid name",
		},
		{
			"missing image",
			func(s *Specification) { s.Spec.Containers[0].Image = "" },
			"image is required",
		},
		{
			"bad cpu",
			func(s *Specification) { s.Spec.Containers[0].Resources.Requests.CPU = "half" },
			"invalid cpu",
		},
		{
			"bad memory",
			func(s *Specification) { s.Spec.Containers[0].Resources.Limits.Memory = "1GB" },
			"invalid memory",
		},
		{
			"bad probe port",
			func(s *Specification) { s.Spec.Containers[0].ReadinessProbe.Port = 0 },
			"invalid port",
		},
		{
			"bad endpoint port",
			func(s *Specification) { s.Spec.Endpoints[0].Port = 70000 },
			"invalid port",
		},
		{
			"endpoint port bound to no container",
			func(s *Specification) { s.Spec.Endpoints[0].Port = 9999 },
			"not exposed by any container",
		},
		{
			"endpoint with no container ports declared",
			func(s *Specification) {
				s.Spec.Containers[0].ReadinessProbe = nil
			},
			"not exposed by any container",
		},
		{
			"duplicate endpoints",
			func(s *Specification) {
				s.Spec.Endpoints = append(s.Spec.Endpoints, s.Spec.Endpoints[0])
			},
			"duplicate endpoint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSpec()
			tt.mutate(s)
			err := s.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	s := validSpec()

	data, err := s.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	loaded, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.Spec.Containers[0].Image != s.Spec.Containers[0].Image {
		t.Errorf("image lost in round trip: %q", loaded.Spec.Containers[0].Image)
	}
	if loaded.Spec.Endpoints[0].Public != true {
		t.Error("endpoint publicity lost in round trip")
	}
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	if _, err := Load([]byte("spec: [not a mapping")); err == nil {
		t.Error("expected parse error")
	}
}

func TestWriteAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.yaml")

	if err := validSpec().WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Spec.Containers[0].Name != "dashboard" {
		t.Errorf("container name = %q", loaded.Spec.Containers[0].Name)
	}
}

func TestRenderDefaults(t *testing.T) {
	s, err := Render(RenderOptions{Image: "/db/schema/repo/app:latest"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	c := s.Spec.Containers[0]
	if c.Name != "main" {
		t.Errorf("container name = %q, want main", c.Name)
	}
	if c.ReadinessProbe.Port != 3000 || c.ReadinessProbe.Path != "/" {
		t.Errorf("probe = %+v", c.ReadinessProbe)
	}
	if len(s.Spec.Endpoints) != 1 || s.Spec.Endpoints[0].Name != "app" || !s.Spec.Endpoints[0].Public {
		t.Errorf("endpoints = %+v", s.Spec.Endpoints)
	}
}

func TestRenderResourcesMirrorRequests(t *testing.T) {
	s, err := Render(RenderOptions{
		Image:  "/db/schema/repo/app:latest",
		CPU:    "0.5",
		Memory: "512Mi",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	res := s.Spec.Containers[0].Resources
	if res == nil || res.Requests.CPU != "0.5" || res.Limits.Memory != "512Mi" {
		t.Errorf("resources = %+v", res)
	}
}

func TestRenderRequiresImage(t *testing.T) {
	if _, err := Render(RenderOptions{}); err == nil {
		t.Error("expected error for missing image")
	}
}
