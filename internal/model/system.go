package model

// GPUInfo describes one accelerator card reported by the backend.
type GPUInfo struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	MemoryTotal float64 `json:"memory_total"`
}

// SystemInfo is the body of GET /system_info.
type SystemInfo struct {
	GPUCount      int       `json:"gpu_count"`
	GPUInfo       []GPUInfo `json:"gpu_info"`
	Datasets      []string  `json:"datasets"`
	Accelerators  []string  `json:"accelerators"`
	SubtasksTotal int       `json:"subtasks_total,omitempty"`
	SubtasksCount int       `json:"subtasks_count,omitempty"`
}

// Fallback counts shown when the backend omits them.
const (
	DefaultDatasetsCount     = 18
	DefaultSubtasksCount     = 312
	DefaultAcceleratorsCount = 3
)

// DatasetsCount returns the dataset count with the display fallback.
func (s SystemInfo) DatasetsCount() int {
	if len(s.Datasets) > 0 {
		return len(s.Datasets)
	}
	return DefaultDatasetsCount
}

// Subtasks returns the subtask total, preferring subtasks_total.
func (s SystemInfo) Subtasks() int {
	if s.SubtasksTotal > 0 {
		return s.SubtasksTotal
	}
	if s.SubtasksCount > 0 {
		return s.SubtasksCount
	}
	return DefaultSubtasksCount
}

// AcceleratorsCount returns the accelerator count with the display fallback.
func (s SystemInfo) AcceleratorsCount() int {
	if len(s.Accelerators) > 0 {
		return len(s.Accelerators)
	}
	return DefaultAcceleratorsCount
}
