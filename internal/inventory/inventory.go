package inventory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iishyfishyy/netask/internal/config"
)

// Device is one network device the operator can target
type Device struct {
	IP         string `yaml:"ip"`
	Hostname   string `yaml:"hostname,omitempty"`
	DeviceType string `yaml:"device_type"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
}

// Name returns the hostname when set, the IP otherwise
func (d Device) Name() string {
	if d.Hostname != "" {
		return d.Hostname
	}
	return d.IP
}

// fileYAML represents the inventory file structure
type fileYAML struct {
	Devices []Device `yaml:"devices"`
}

// Inventory is the read-only device list loaded at startup
type Inventory struct {
	devices []Device
}

// New builds an inventory from already validated records
func New(devices []Device) *Inventory {
	d := make([]Device, len(devices))
	copy(d, devices)
	return &Inventory{devices: d}
}

// Load reads an inventory file
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &config.Error{Op: "read inventory", Path: path, Err: err}
	}

	inv, err := Parse(data)
	if err != nil {
		return nil, &config.Error{Op: "load inventory", Path: path, Err: err}
	}
	return inv, nil
}

// Parse parses inventory YAML. A document without a devices key yields an empty inventory.
func Parse(data []byte) (*Inventory, error) {
	var f fileYAML
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validate(f.Devices); err != nil {
		return nil, err
	}

	return New(f.Devices), nil
}

func validate(devices []Device) error {
	seen := make(map[string]int, len(devices))
	for i, d := range devices {
		switch {
		case d.IP == "":
			return fmt.Errorf("device %d: ip is required", i)
		case d.DeviceType == "":
			return fmt.Errorf("device %d (%s): device_type is required", i, d.IP)
		case d.Username == "":
			return fmt.Errorf("device %d (%s): username is required", i, d.IP)
		case d.Password == "":
			return fmt.Errorf("device %d (%s): password is required", i, d.IP)
		}
		if prev, ok := seen[d.IP]; ok {
			return fmt.Errorf("device %d: ip %s already used by device %d", i, d.IP, prev)
		}
		seen[d.IP] = i
	}
	return nil
}

// Find returns the first device whose IP or hostname equals identifier exactly
func (inv *Inventory) Find(identifier string) (Device, bool) {
	if identifier == "" {
		return Device{}, false
	}

	for _, d := range inv.devices {
		if d.IP == identifier || d.Hostname == identifier {
			return d, true
		}
	}

	return Device{}, false
}

// Devices returns a copy of all devices in file order
func (inv *Inventory) Devices() []Device {
	d := make([]Device, len(inv.devices))
	copy(d, inv.devices)
	return d
}

// Len returns the number of devices
func (inv *Inventory) Len() int {
	return len(inv.devices)
}
