// Package sysinfo probes the local machine for context embedded into
// planning prompts. Probing is best effort: any field may be empty, and a
// completely failed probe is a valid absent state rather than an error the
// caller has to handle.
package sysinfo

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// Info describes the host system. All fields are optional text.
type Info struct {
	OSName        string
	OSVersion     string
	KernelVersion string
	DesktopEnv    string
	Shell         string
	MemoryTotal   string
	CPUInfo       string
}

// Probe gathers system information once at startup. It returns nil when
// nothing at all could be determined; prompts then simply omit the context.
func Probe(logger *zap.Logger) *Info {
	if logger == nil {
		logger = zap.NewNop()
	}

	info := &Info{
		Shell:      os.Getenv("SHELL"),
		DesktopEnv: desktopEnv(),
	}

	if name, version, err := readOSRelease("/etc/os-release"); err == nil {
		info.OSName = name
		info.OSVersion = version
	} else {
		logger.Debug("could not read os-release", zap.Error(err))
	}

	if kernel, err := os.ReadFile("/proc/sys/kernel/osrelease"); err == nil {
		info.KernelVersion = strings.TrimSpace(string(kernel))
	}

	if mem, err := readMemTotal("/proc/meminfo"); err == nil {
		info.MemoryTotal = mem
	} else {
		logger.Debug("could not read meminfo", zap.Error(err))
	}

	if cpu, err := readCPUModel("/proc/cpuinfo"); err == nil {
		info.CPUInfo = cpu
	}

	if *info == (Info{}) {
		logger.Warn("system information probe found nothing")
		return nil
	}

	return info
}

// Render formats the info as a text block for prompt embedding.
func (i *Info) Render() string {
	if i == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("System information:\n")
	writeField(&sb, "OS", strings.TrimSpace(i.OSName+" "+i.OSVersion))
	writeField(&sb, "Kernel", i.KernelVersion)
	writeField(&sb, "Desktop", i.DesktopEnv)
	writeField(&sb, "Shell", i.Shell)
	writeField(&sb, "Memory", i.MemoryTotal)
	writeField(&sb, "CPU", i.CPUInfo)
	return sb.String()
}

func writeField(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(sb, "%s: %s\n", label, value)
}

func desktopEnv() string {
	if de := os.Getenv("XDG_CURRENT_DESKTOP"); de != "" {
		return de
	}
	return os.Getenv("DESKTOP_SESSION")
}

// readOSRelease parses NAME and VERSION from an os-release file.
func readOSRelease(path string) (name, version string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.Trim(value, `"`)
		switch key {
		case "NAME":
			name = value
		case "VERSION":
			version = value
		}
	}
	return name, version, nil
}

// readMemTotal reads MemTotal from a meminfo file and humanizes it.
func readMemTotal(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			break
		}
		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return "", err
		}
		return humanize.IBytes(kb * 1024), nil
	}
	return "", fmt.Errorf("MemTotal not found in %s", path)
}

// readCPUModel reads the first "model name" entry from a cpuinfo file.
func readCPUModel(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		if strings.TrimSpace(key) == "model name" {
			return strings.TrimSpace(value), nil
		}
	}
	return "", fmt.Errorf("model name not found in %s", path)
}
