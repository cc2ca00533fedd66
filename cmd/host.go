package cmd

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Describe the host so that throughput numbers can be compared across runs.
func hostInfo() (string, error) {
	cpuInfo, err := cpu.Info()
	if err != nil {
		return "", err
	}
	if len(cpuInfo) == 0 {
		return "", fmt.Errorf("no CPU information available")
	}

	logical, err := cpu.Counts(true)
	if err != nil {
		return "", err
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"%s (%d logical cores, %.2f GHz), %d GB RAM",
		cpuInfo[0].ModelName, logical, cpuInfo[0].Mhz/1000, memInfo.Total/(1024*1024*1024),
	), nil
}
