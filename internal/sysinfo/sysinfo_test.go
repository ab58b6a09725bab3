package sysinfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadOSRelease(t *testing.T) {
	t.Run("parses name and version", func(t *testing.T) {
		path := writeTempFile(t, "os-release", `NAME="Ubuntu"
VERSION="24.04 LTS (Noble Numbat)"
ID=ubuntu
`)
		name, version, err := readOSRelease(path)
		require.NoError(t, err)
		assert.Equal(t, "Ubuntu", name)
		assert.Equal(t, "24.04 LTS (Noble Numbat)", version)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, _, err := readOSRelease("/nonexistent/os-release")
		assert.Error(t, err)
	})
}

func TestReadMemTotal(t *testing.T) {
	t.Run("humanizes MemTotal", func(t *testing.T) {
		path := writeTempFile(t, "meminfo", `MemTotal:       16384000 kB
MemFree:         1234567 kB
`)
		mem, err := readMemTotal(path)
		require.NoError(t, err)
		assert.Contains(t, mem, "GiB")
	})

	t.Run("missing MemTotal is an error", func(t *testing.T) {
		path := writeTempFile(t, "meminfo", "MemFree: 1 kB\n")
		_, err := readMemTotal(path)
		assert.Error(t, err)
	})
}

func TestReadCPUModel(t *testing.T) {
	path := writeTempFile(t, "cpuinfo", `processor	: 0
vendor_id	: GenuineIntel
model name	: Intel(R) Core(TM) i7-9750H CPU @ 2.60GHz
`)
	cpu, err := readCPUModel(path)
	require.NoError(t, err)
	assert.Equal(t, "Intel(R) Core(TM) i7-9750H CPU @ 2.60GHz", cpu)
}

func TestRender(t *testing.T) {
	t.Run("nil info renders empty", func(t *testing.T) {
		var info *Info
		assert.Equal(t, "", info.Render())
	})

	t.Run("renders only populated fields", func(t *testing.T) {
		info := &Info{OSName: "Debian", Shell: "/bin/bash"}
		rendered := info.Render()

		assert.Contains(t, rendered, "OS: Debian")
		assert.Contains(t, rendered, "Shell: /bin/bash")
		assert.NotContains(t, rendered, "Kernel")
		assert.NotContains(t, rendered, "Memory")
	})
}
