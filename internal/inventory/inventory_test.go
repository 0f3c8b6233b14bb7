package inventory

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iishyfishyy/netask/internal/config"
)

const sampleYAML = `
devices:
  - ip: 10.0.0.1
    hostname: r1
    device_type: cisco_ios
    username: admin
    password: secret
  - ip: 10.0.0.2
    device_type: arista_eos
    username: ops
    password: hunter2
`

func TestParse(t *testing.T) {
	inv, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	require.Equal(t, 2, inv.Len())

	devices := inv.Devices()
	assert.Equal(t, Device{IP: "10.0.0.1", Hostname: "r1", DeviceType: "cisco_ios", Username: "admin", Password: "secret"}, devices[0])
	assert.Equal(t, "10.0.0.2", devices[1].IP)
	assert.Empty(t, devices[1].Hostname)
}

func TestParseMissingDevicesKey(t *testing.T) {
	for name, doc := range map[string]string{
		"other key": "routers:\n  - ip: 10.0.0.1\n",
		"empty":     "",
		"null":      "devices:\n",
	} {
		t.Run(name, func(t *testing.T) {
			inv, err := Parse([]byte(doc))
			require.NoError(t, err)
			assert.Zero(t, inv.Len())
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	tests := map[string]string{
		"not yaml":       "devices: [",
		"devices scalar": "devices: nope",
		"top level list": "- ip: 10.0.0.1",
		"missing ip":     "devices:\n  - device_type: cisco_ios\n    username: a\n    password: b\n",
		"missing type":   "devices:\n  - ip: 10.0.0.1\n    username: a\n    password: b\n",
		"missing user":   "devices:\n  - ip: 10.0.0.1\n    device_type: cisco_ios\n    password: b\n",
		"missing pass":   "devices:\n  - ip: 10.0.0.1\n    device_type: cisco_ios\n    username: a\n",
		"duplicate ip":   sampleYAML + "  - ip: 10.0.0.1\n    device_type: linux\n    username: a\n    password: b\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "devices.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	inv, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, inv.Len())
}

func TestLoadErrorsAreConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yml"))
	var cfgErr *config.Error
	require.True(t, errors.As(err, &cfgErr), "missing file: got %v", err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("devices: ["), 0o600))
	_, err = Load(bad)
	require.True(t, errors.As(err, &cfgErr), "malformed file: got %v", err)
	assert.Equal(t, bad, cfgErr.Path)
}

func TestFind(t *testing.T) {
	inv := New([]Device{{IP: "10.0.0.1", Hostname: "r1", DeviceType: "cisco_ios", Username: "u", Password: "p"}})

	d, ok := inv.Find("10.0.0.1")
	assert.True(t, ok)
	assert.Equal(t, "10.0.0.1", d.IP)

	d, ok = inv.Find("r1")
	assert.True(t, ok)
	assert.Equal(t, "10.0.0.1", d.IP)

	_, ok = inv.Find("10.0.0.2")
	assert.False(t, ok)

	_, ok = inv.Find("")
	assert.False(t, ok)

	_, ok = inv.Find("R1")
	assert.False(t, ok, "lookup is case-sensitive")
}

func TestFindReturnsFirstMatchingRecord(t *testing.T) {
	inv := New([]Device{
		{IP: "10.0.0.1", Hostname: "10.0.0.2"},
		{IP: "10.0.0.2", Hostname: "core"},
	})

	d, ok := inv.Find("10.0.0.2")
	require.True(t, ok)
	assert.Equal(t, "10.0.0.1", d.IP, "an earlier hostname match wins over a later ip match")

	d, ok = inv.Find("core")
	require.True(t, ok)
	assert.Equal(t, "10.0.0.2", d.IP)
}

func TestDevicesReturnsCopy(t *testing.T) {
	inv := New([]Device{{IP: "10.0.0.1"}})
	devices := inv.Devices()
	devices[0].IP = "changed"

	_, ok := inv.Find("10.0.0.1")
	assert.True(t, ok)
}

func TestDeviceName(t *testing.T) {
	assert.Equal(t, "r1", Device{IP: "10.0.0.1", Hostname: "r1"}.Name())
	assert.Equal(t, "10.0.0.1", Device{IP: "10.0.0.1"}.Name())
}
