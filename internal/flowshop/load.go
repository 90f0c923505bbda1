package flowshop

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// instanceFile is the on-disk form of an instance. JSON files parse too,
// since YAML is a superset of JSON.
type instanceFile struct {
	Name            string  `yaml:"name"`
	ProcessingTimes [][]int `yaml:"processing_times"`
}

// ParseInstance decodes a YAML or JSON instance document.
func ParseInstance(data []byte) (*Instance, error) {
	var f instanceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse instance: %w", err)
	}
	inst, err := FromMatrix(f.ProcessingTimes)
	if err != nil {
		return nil, err
	}
	inst.Name = f.Name
	return inst, nil
}

// LoadInstance reads an instance file. The file name is used when the
// document carries no name.
func LoadInstance(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read instance %s: %w", path, err)
	}
	inst, err := ParseInstance(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if inst.Name == "" {
		inst.Name = path
	}
	return inst, nil
}

// MarshalInstance encodes inst in the format read by ParseInstance.
func MarshalInstance(inst *Instance) ([]byte, error) {
	return yaml.Marshal(instanceFile{Name: inst.Name, ProcessingTimes: inst.Matrix()})
}
