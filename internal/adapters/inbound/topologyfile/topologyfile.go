// Package topologyfile loads the restart topology from its YAML declaration.
package topologyfile

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/skillcoder/platform-restarter/internal/logic/topology"
)

const (
	DefaultGateTimeout      = 300 * time.Second
	DefaultGatePollInterval = 5 * time.Second
)

//go:embed default.yaml
var defaultTopology []byte

type document struct {
	Tiers []tierDoc `yaml:"tiers"`
	Gate  gateDoc   `yaml:"gate"`
}

type tierDoc struct {
	Name      string        `yaml:"name"`
	Namespace string        `yaml:"namespace"`
	Resources []resourceDoc `yaml:"resources"`
}

type resourceDoc struct {
	Kind        string   `yaml:"kind"`
	Name        string   `yaml:"name"`
	Namespace   string   `yaml:"namespace"`
	Replicas    *int32   `yaml:"replicas"`
	ResetClaims []string `yaml:"resetClaims"`
}

type gateDoc struct {
	Kind         string        `yaml:"kind"`
	Name         string        `yaml:"name"`
	Namespace    string        `yaml:"namespace"`
	Timeout      time.Duration `yaml:"timeout"`
	PollInterval time.Duration `yaml:"pollInterval"`
}

// Default returns the embedded platform topology.
func Default() (*topology.Topology, error) {
	return Parse(defaultTopology)
}

// Load reads the topology from path, or the embedded default when path is empty.
func Load(path string) (*topology.Topology, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFile, err)
	}

	return Parse(data)
}

// Parse decodes a YAML topology declaration. Unknown fields are rejected.
func Parse(data []byte) (*topology.Topology, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var doc document

	err := decoder.Decode(&doc)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	tiers, err := doc.toTiers()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	gate, err := doc.Gate.toGate()
	if err != nil {
		return nil, fmt.Errorf("%w: gate: %w", ErrInvalid, err)
	}

	topo, err := topology.New(tiers, gate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return topo, nil
}

func (d document) toTiers() ([]topology.Tier, error) {
	tiers := make([]topology.Tier, 0, len(d.Tiers))

	for _, td := range d.Tiers {
		tier := topology.Tier{
			Name:      td.Name,
			Resources: make([]topology.Resource, 0, len(td.Resources)),
		}

		for i, rd := range td.Resources {
			res, err := rd.toResource(td.Namespace)
			if err != nil {
				return nil, fmt.Errorf("tier %q resource %d: %w", td.Name, i, err)
			}

			tier.Resources = append(tier.Resources, res)
		}

		tiers = append(tiers, tier)
	}

	return tiers, nil
}

func (r resourceDoc) toResource(tierNamespace string) (topology.Resource, error) {
	kind, err := topology.ParseKind(r.Kind)
	if err != nil {
		return topology.Resource{}, err
	}

	namespace := r.Namespace
	if namespace == "" {
		namespace = tierNamespace
	}

	replicas := topology.DefaultReplicas
	if r.Replicas != nil {
		replicas = *r.Replicas
	}

	return topology.Resource{
		Ref:         topology.ResourceRef{Kind: kind, Name: r.Name, Namespace: namespace},
		Replicas:    replicas,
		ResetClaims: r.ResetClaims,
	}, nil
}

func (g gateDoc) toGate() (topology.Gate, error) {
	kind, err := topology.ParseKind(g.Kind)
	if err != nil {
		return topology.Gate{}, err
	}

	gate := topology.Gate{
		Ref:          topology.ResourceRef{Kind: kind, Name: g.Name, Namespace: g.Namespace},
		Timeout:      g.Timeout,
		PollInterval: g.PollInterval,
	}

	if gate.Timeout == 0 {
		gate.Timeout = DefaultGateTimeout
	}

	if gate.PollInterval == 0 {
		gate.PollInterval = DefaultGatePollInterval
	}

	return gate, nil
}
