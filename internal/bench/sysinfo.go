package bench

import (
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

// SysInfo описывает машину, на которой выполнялись замеры.
type SysInfo struct {
	Platform string
	CPU      string
	Cores    int
	RAM      string
}

// HostInfo собирает сведения о системе. Недоступные поля остаются
// пустыми: отсутствие данных о железе не должно прерывать бенчмарк.
func HostInfo() SysInfo {
	info := SysInfo{Platform: runtime.GOOS + "/" + runtime.GOARCH, Cores: runtime.NumCPU()}
	if h, err := host.Info(); err == nil && h.Platform != "" {
		info.Platform = h.Platform + " " + h.PlatformVersion
	}
	if c, err := cpu.Info(); err == nil && len(c) > 0 {
		info.CPU = c[0].ModelName
	}
	if v, err := mem.VirtualMemory(); err == nil {
		info.RAM = humanize.IBytes(v.Total)
	}
	return info
}
